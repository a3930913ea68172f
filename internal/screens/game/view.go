package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonarcade/internal/activity"
	"github.com/abhisek/lessonarcade/internal/lessonplan"
	"github.com/abhisek/lessonarcade/internal/scoring"
	"github.com/abhisek/lessonarcade/internal/session"
	"github.com/abhisek/lessonarcade/internal/ui/components"
	"github.com/abhisek/lessonarcade/internal/ui/layout"
)

const introText = "Your adventure awaits. Learn the story, put events in order, " +
	"answer the questions and race the clock to claim the highest title."

func (g *GameScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch g.state.Kind() {
	case session.KindWelcome:
		body = g.viewWelcome(cw)
	case session.KindInfoSlide:
		body = g.viewSlide(cw)
	case session.KindChronology:
		body = g.viewChronology(cw)
	case session.KindQuiz:
		body = g.viewQuiz(cw)
	case session.KindFastestFinger:
		body = g.viewFastestFinger(cw)
	case session.KindResults:
		body = g.viewResults(cw)
	}

	if g.errMsg != "" {
		body += "\n\n" + g.palette.Feedback(false).Render(g.errMsg)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (g *GameScreen) viewWelcome(cw int) string {
	p := g.palette
	topic := ""
	if g.state.Active {
		topic = g.state.Topic
	}
	content := p.Title().Render(topic) + "\n\n" +
		p.Body().Width(cw-8).Align(lipgloss.Center).Render(introText) + "\n\n" +
		components.NewButton("Begin Your Journey").View(p)
	return components.Card(p, content, cw)
}

func (g *GameScreen) viewSlide(cw int) string {
	p := g.palette
	slide := g.state.Slide
	if slide == nil {
		return components.Card(p, components.NewButton("Continue").View(p), cw)
	}

	var b strings.Builder
	b.WriteString(p.Title().Render(slide.Title))
	b.WriteString("\n\n")
	for _, para := range slide.Paragraphs {
		b.WriteString(p.Body().Width(cw - 8).Render(para))
		b.WriteString("\n\n")
	}
	b.WriteString(components.NewButton("Continue").View(p))
	return components.Card(p, b.String(), cw)
}

func (g *GameScreen) viewChronology(cw int) string {
	p := g.palette
	c := g.state.Chronology
	if c == nil {
		return ""
	}

	half := (cw - 2) / 2
	pool := components.Panel(p, "Event Pool", g.pool.View(p, g.focus == focusPool, false), half, g.focus == focusPool)
	timeline := components.Panel(p, "Timeline", g.timeline.View(p, g.focus == focusTimeline, true), half, g.focus == focusTimeline)

	out := p.Dim().Render("Arrange the events in the order they happened.") + "\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, pool, "  ", timeline)
	if c.Message != "" {
		out += "\n\n" + p.Feedback(c.Solved).Render(c.Message)
	}
	return out
}

func (g *GameScreen) viewQuiz(cw int) string {
	p := g.palette
	q := g.state.Quiz
	if q == nil {
		return ""
	}
	if q.Finished || q.Question == nil {
		content := p.Title().Render("Quiz Completed!") + "\n\n" +
			p.Body().Render("You have proven your knowledge. Well done!")
		return components.Card(p, content, cw)
	}

	var b strings.Builder
	b.WriteString(p.Dim().Render(fmt.Sprintf("Question %d of %d", q.Index+1, q.Total)))
	b.WriteString("\n\n")
	b.WriteString(p.Heading().Width(cw - 8).Render(q.Question.Question))
	b.WriteString("\n\n")
	b.WriteString(g.choice.View(p))
	if q.Feedback != nil {
		b.WriteString("\n")
		b.WriteString(g.feedbackLine(q.Feedback))
		b.WriteString("\n\n")
		label := "Next Question"
		if q.Index == q.Total-1 {
			label = "Finish Quiz"
		}
		b.WriteString(components.NewButton(label).View(p))
	}
	return components.Card(p, b.String(), cw)
}

func (g *GameScreen) viewFastestFinger(cw int) string {
	p := g.palette
	ff := g.state.FastestFinger
	if ff == nil {
		return ""
	}
	if !ff.Playable {
		content := p.Body().Width(cw-8).Align(lipgloss.Center).Render(ff.Message) + "\n\n" +
			components.NewButton("Continue").View(p)
		return components.Card(p, content, cw)
	}
	if ff.Finished || ff.Question == nil {
		content := p.Title().Render("Final Challenge Complete!") + "\n\n" +
			p.Body().Render("The final results are being calculated...")
		return components.Card(p, content, cw)
	}

	var b strings.Builder
	b.WriteString(p.Dim().Render(fmt.Sprintf("Question %d of %d", ff.Index+1, ff.Total)))
	b.WriteString("\n\n")
	b.WriteString(p.Body().Render("Which set of keywords belongs to:"))
	b.WriteString("\n")
	b.WriteString(p.Title().Render(ff.Question.Prompt))
	b.WriteString("\n\n")
	b.WriteString(g.choice.View(p))
	if ff.Feedback != nil {
		b.WriteString("\n")
		b.WriteString(g.feedbackLine(ff.Feedback))
		b.WriteString("\n\n")
		label := "Next"
		if ff.Index == ff.Total-1 {
			label = "Finish"
		}
		b.WriteString(components.NewButton(label).View(p))
	}
	return components.Card(p, b.String(), cw)
}

func (g *GameScreen) viewResults(cw int) string {
	p := g.palette
	st := g.state
	pointName := "Points"
	var titles []lessonplan.Title
	if st.Theme != nil {
		pointName = st.Theme.PointName
		titles = st.Theme.Titles
	}

	var b strings.Builder
	b.WriteString(p.Title().Render("Your Journey is Complete!"))
	b.WriteString("\n")
	b.WriteString(p.Dim().Render("You have navigated the treacherous currents of this topic."))
	b.WriteString("\n\n")
	b.WriteString(p.Dim().Render("Your Final Title"))
	b.WriteString("\n")
	b.WriteString(p.Heading().Render("♛ " + st.Title))
	b.WriteString("\n\n")
	b.WriteString(p.Dim().Render("Total " + pointName + " Earned"))
	b.WriteString("\n")
	b.WriteString(p.Heading().Render(layout.FormatScore(st.Score)))
	b.WriteString("\n\n")
	if next, ok := scoring.NextTitle(st.Score, titles); ok {
		b.WriteString(components.Meter(p, "Next: "+next.Name, titleProgress(st.Score, titles, next), cw-10))
		b.WriteString("\n\n")
	}
	b.WriteString(components.NewButton("Create New Lesson").View(p))
	return components.Card(p, b.String(), cw)
}

func (g *GameScreen) feedbackLine(fb *activity.Feedback) string {
	mark := "✗ "
	if fb.Correct {
		mark = "✓ "
	}
	return g.palette.Feedback(fb.Correct).Render(mark + fb.Message)
}

// titleProgress is the fraction of the way from the highest reached
// threshold to next.
func titleProgress(score int, titles []lessonplan.Title, next lessonplan.Title) float64 {
	base := 0
	for _, t := range titles {
		if t.Threshold <= score && t.Threshold > base {
			base = t.Threshold
		}
	}
	span := next.Threshold - base
	if span <= 0 {
		return 1
	}
	return float64(score-base) / float64(span)
}
