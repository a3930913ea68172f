package lessonplan

import (
	"encoding/json"
	"math"
)

// LessonPlan is the complete content package for one game session.
// It is produced once by the generator and treated as read-only afterwards.
type LessonPlan struct {
	Topic         string         `json:"topic"`
	Theme         Theme          `json:"theme"`
	Chronology    Chronology     `json:"chronology"`
	Quiz          Quiz           `json:"quiz"`
	FastestFinger FastestFinger  `json:"fastestFinger"`
	InfoSlides    []SlideContent `json:"infoSlides"`
}

// Theme carries presentation data plus the rank table and the name of the
// point unit (e.g. "Gold Coins").
type Theme struct {
	PointName   string      `json:"pointName"`
	Titles      []Title     `json:"titles"`
	ColorScheme ColorScheme `json:"colorScheme"`
	Fonts       Fonts       `json:"fonts"`
}

// Title is a named rank unlocked once the score reaches Threshold.
type Title struct {
	Threshold int    `json:"threshold"`
	Name      string `json:"name"`
}

// UnmarshalJSON accepts any JSON number as the threshold. Scores are whole
// points, so a fractional threshold is rounded up to the first score that
// reaches it: 1500.5 unlocks at 1501.
func (t *Title) UnmarshalJSON(b []byte) error {
	var raw struct {
		Threshold float64 `json:"threshold"`
		Name      string  `json:"name"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.Name = raw.Name
	t.Threshold = wholePoints(raw.Threshold)
	return nil
}

func wholePoints(f float64) int {
	f = math.Ceil(f)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

// ColorScheme holds #RRGGBB hex colors.
type ColorScheme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Fonts names display and body typefaces. Terminal hosts ignore them.
type Fonts struct {
	Display string `json:"display"`
	Body    string `json:"body"`
}

// Chronology lists events in their canonical (correct) order.
type Chronology struct {
	Items []ChronologyItem `json:"items"`
}

// ChronologyItem is identified by ID; Text need not be unique.
type ChronologyItem struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion is a single-choice question. CorrectAnswer equals one of Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type FastestFinger struct {
	Concepts []FastestFingerConcept `json:"concepts"`
}

// FastestFingerConcept pairs a concept name with the keywords that describe it.
type FastestFingerConcept struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// SlideContent is a narrative slide shown between activities.
type SlideContent struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

// RequiredSlides is the number of info slides the game flow consumes.
const RequiredSlides = 2
