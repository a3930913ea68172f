package lessonplan

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Normalize tidies a freshly generated plan in place: text is trimmed, empty
// keywords and paragraphs are dropped, and titles are sorted by threshold so
// that "last qualifying title" means "highest qualifying title". If no title
// starts at zero, the lowest one is moved down to zero.
func Normalize(p *LessonPlan) {
	p.Topic = strings.TrimSpace(p.Topic)
	p.Theme.PointName = strings.TrimSpace(p.Theme.PointName)

	for i := range p.Theme.Titles {
		p.Theme.Titles[i].Name = strings.TrimSpace(p.Theme.Titles[i].Name)
	}
	slices.SortStableFunc(p.Theme.Titles, func(a, b Title) int {
		return cmp.Compare(a.Threshold, b.Threshold)
	})
	if len(p.Theme.Titles) > 0 && p.Theme.Titles[0].Threshold > 0 {
		p.Theme.Titles[0].Threshold = 0
	}

	for i := range p.Chronology.Items {
		p.Chronology.Items[i].Text = strings.TrimSpace(p.Chronology.Items[i].Text)
	}

	for i := range p.Quiz.Questions {
		q := &p.Quiz.Questions[i]
		q.Question = strings.TrimSpace(q.Question)
		q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
		for j := range q.Options {
			q.Options[j] = strings.TrimSpace(q.Options[j])
		}
	}

	for i := range p.FastestFinger.Concepts {
		c := &p.FastestFinger.Concepts[i]
		c.Name = strings.TrimSpace(c.Name)
		c.Keywords = compact(c.Keywords)
	}

	for i := range p.InfoSlides {
		s := &p.InfoSlides[i]
		s.Title = strings.TrimSpace(s.Title)
		s.Paragraphs = compact(s.Paragraphs)
	}
}

func compact(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Ingest decodes, normalizes and validates a JSON lesson plan.
func Ingest(raw []byte) (*LessonPlan, error) {
	var p LessonPlan
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidPlan, err)
	}
	Normalize(&p)
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
