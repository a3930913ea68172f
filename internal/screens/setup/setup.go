package setup

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonarcade/internal/lessongen"
	"github.com/abhisek/lessonarcade/internal/lessonplan"
	"github.com/abhisek/lessonarcade/internal/router"
	"github.com/abhisek/lessonarcade/internal/screen"
	"github.com/abhisek/lessonarcade/internal/ui/components"
	"github.com/abhisek/lessonarcade/internal/ui/layout"
	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

// Generator produces a lesson plan from the form.
type Generator interface {
	Generate(ctx context.Context, r lessongen.Request) (*lessonplan.LessonPlan, error)
}

const (
	fieldTopic = iota
	fieldContent
	fieldGrade
	fieldSubmit
	fieldCount
)

const formWidth = 64

// SetupScreen collects topic, content and grade level and runs generation.
type SetupScreen struct {
	generator Generator
	play      func(*lessonplan.LessonPlan) screen.Screen

	topic   components.TextInput
	content textarea.Model
	grade   components.TextInput
	focus   int

	spinner    spinner.Model
	generating bool
	attempt    int
	cancel     context.CancelFunc
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.Closer = (*SetupScreen)(nil)

// New creates the setup form. play builds the screen that runs a generated plan.
func New(gen Generator, play func(*lessonplan.LessonPlan) screen.Screen) *SetupScreen {
	ta := textarea.New()
	ta.Placeholder = "Paste your key concepts, events, and figures here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 20000
	ta.SetWidth(formWidth)
	ta.SetHeight(8)

	return &SetupScreen{
		generator: gen,
		play:      play,
		topic:     components.NewTextInput("Topic", "e.g., The French Revolution", "", formWidth),
		content:   ta,
		grade:     components.NewTextInput("Grade Level", "e.g., 10th Grade", "", formWidth),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.setFocus(fieldTopic)
}

func (s *SetupScreen) Title() string {
	return "Lesson Generator"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.generating {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Generate"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		return s.handlePlanReady(msg)

	case spinner.TickMsg:
		if !s.generating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s, s.forward(msg)
}

func (s *SetupScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.generating {
		if msg.String() == "esc" {
			s.stopGenerating()
		}
		return s, nil
	}

	switch msg.String() {
	case "tab":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "ctrl+s":
		return s, s.submit()
	case "enter":
		switch s.focus {
		case fieldSubmit:
			return s, s.submit()
		case fieldTopic, fieldGrade:
			return s, s.setFocus(s.focus + 1)
		}
	}

	return s, s.forward(msg)
}

// forward passes input to the focused field.
func (s *SetupScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	case fieldContent:
		s.content, cmd = s.content.Update(msg)
	case fieldGrade:
		s.grade, cmd = s.grade.Update(msg)
	}
	return cmd
}

func (s *SetupScreen) setFocus(field int) tea.Cmd {
	s.focus = field
	s.topic.Blur()
	s.content.Blur()
	s.grade.Blur()
	switch field {
	case fieldTopic:
		return s.topic.Focus()
	case fieldContent:
		return s.content.Focus()
	case fieldGrade:
		return s.grade.Focus()
	}
	return nil
}

func (s *SetupScreen) request() lessongen.Request {
	return lessongen.Request{
		Topic:      s.topic.Value(),
		Content:    s.content.Value(),
		GradeLevel: s.grade.Value(),
	}
}

func (s *SetupScreen) submit() tea.Cmd {
	req := s.request()
	if err := req.Validate(); err != nil {
		s.errMsg = err.Error()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.generating = true
	s.errMsg = ""
	s.attempt++
	attempt := s.attempt
	gen := s.generator

	return tea.Batch(
		s.spinner.Tick,
		func() tea.Msg {
			plan, err := gen.Generate(ctx, req)
			return planReadyMsg{attempt: attempt, Plan: plan, Err: err}
		},
	)
}

// Close abandons any generation still in flight.
func (s *SetupScreen) Close() {
	s.stopGenerating()
}

func (s *SetupScreen) stopGenerating() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generating = false
}

func (s *SetupScreen) handlePlanReady(msg planReadyMsg) (screen.Screen, tea.Cmd) {
	if !s.generating || msg.attempt != s.attempt {
		return s, nil
	}
	s.stopGenerating()

	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		if !errors.Is(msg.Err, lessongen.ErrInvalidInput) && !errors.Is(msg.Err, lessongen.ErrGenerationFailed) {
			s.errMsg = lessongen.FailureMessage
		}
		return s, nil
	}

	next := s.play(msg.Plan)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SetupScreen) View(width, height int) string {
	p := theme.Default()
	var b strings.Builder

	b.WriteString(components.RenderBanner(p, width, height))
	b.WriteString("\n\n")
	b.WriteString(p.Title().Render("Lesson Generator"))
	b.WriteString("\n")
	b.WriteString(p.Dim().Render("Enter your lesson content to generate a dynamic, interactive game."))
	b.WriteString("\n\n")

	b.WriteString(s.topic.View(p))
	b.WriteString("\n\n")

	label := p.Dim()
	if s.focus == fieldContent {
		label = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	}
	b.WriteString(label.Render("Lesson Content / Notes"))
	b.WriteString("\n")
	b.WriteString(s.content.View())
	b.WriteString("\n\n")

	b.WriteString(s.grade.View(p))
	b.WriteString("\n\n")

	if s.generating {
		b.WriteString(s.spinner.View() + " " + p.Body().Render("Generating Your Lesson..."))
	} else {
		btn := components.Button{Label: "Generate Lesson", Focused: s.focus == fieldSubmit}
		b.WriteString(btn.View(p))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(formWidth).Foreground(p.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
