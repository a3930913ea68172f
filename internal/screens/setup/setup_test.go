package setup

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonarcade/internal/lessongen"
	"github.com/abhisek/lessonarcade/internal/lessonplan"
	"github.com/abhisek/lessonarcade/internal/router"
	"github.com/abhisek/lessonarcade/internal/screen"
)

type stubGenerator struct {
	plan  *lessonplan.LessonPlan
	err   error
	calls int
	last  lessongen.Request
}

func (g *stubGenerator) Generate(_ context.Context, r lessongen.Request) (*lessonplan.LessonPlan, error) {
	g.calls++
	g.last = r
	return g.plan, g.err
}

type stubScreen struct{ plan *lessonplan.LessonPlan }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "" }
func (s *stubScreen) Title() string                           { return "stub" }

func newTestScreen(gen Generator) *SetupScreen {
	return New(gen, func(p *lessonplan.LessonPlan) screen.Screen { return &stubScreen{plan: p} })
}

func ctrlS() tea.KeyPressMsg { return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl} }

func typeText(s *SetupScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// runPlanCmd executes cmd, descending into batches, and returns the
// planReadyMsg it produces.
func runPlanCmd(t *testing.T, cmd tea.Cmd) planReadyMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case planReadyMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if m, ok := c().(planReadyMsg); ok {
				return m
			}
		}
	}
	t.Fatal("no planReadyMsg produced")
	return planReadyMsg{}
}

func fill(s *SetupScreen) {
	s.Init()
	typeText(s, "Moon")
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	typeText(s, "Apollo 11 landed in 1969.")
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	typeText(s, "6th Grade")
}

func TestSubmit_EmptyFieldsShowError(t *testing.T) {
	gen := &stubGenerator{}
	s := newTestScreen(gen)
	s.Init()

	_, cmd := s.Update(ctrlS())
	if cmd != nil {
		t.Error("expected no command for invalid input")
	}
	if s.errMsg != "All fields must be filled out." {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if gen.calls != 0 {
		t.Error("generator should not be called")
	}
}

func TestSubmit_GeneratesAndReplaces(t *testing.T) {
	gen := &stubGenerator{plan: lessonplan.Sample()}
	s := newTestScreen(gen)
	fill(s)

	_, cmd := s.Update(ctrlS())
	if !s.generating {
		t.Fatal("expected generating state")
	}
	if !strings.Contains(s.View(100, 40), "Generating Your Lesson...") {
		t.Error("view should show progress while generating")
	}

	msg := runPlanCmd(t, cmd)
	if gen.last.Topic != "Moon" || gen.last.GradeLevel != "6th Grade" {
		t.Errorf("request = %+v", gen.last)
	}

	_, cmd = s.Update(msg)
	if s.generating {
		t.Error("generating should end")
	}
	if cmd == nil {
		t.Fatal("expected replace command")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg")
	}
	if replace.Screen.(*stubScreen).plan.Topic != "The Race to the Moon" {
		t.Error("plan not handed to the next screen")
	}
}

func TestSubmit_FailureShowsGenericMessage(t *testing.T) {
	gen := &stubGenerator{err: &lessongen.GenerationError{Message: lessongen.FailureMessage}}
	s := newTestScreen(gen)
	fill(s)

	_, cmd := s.Update(ctrlS())
	s.Update(runPlanCmd(t, cmd))

	if s.errMsg != lessongen.FailureMessage {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if s.generating {
		t.Error("generating should end")
	}
}

func TestCancel_IgnoresLateResult(t *testing.T) {
	gen := &stubGenerator{plan: lessonplan.Sample()}
	s := newTestScreen(gen)
	fill(s)

	_, cmd := s.Update(ctrlS())
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.generating {
		t.Fatal("esc should cancel generation")
	}

	_, next := s.Update(runPlanCmd(t, cmd))
	if next != nil {
		t.Error("late result should be ignored")
	}
}

func TestClose_AbandonsGeneration(t *testing.T) {
	gen := &stubGenerator{plan: lessonplan.Sample()}
	s := newTestScreen(gen)
	fill(s)

	_, cmd := s.Update(ctrlS())
	s.Close()
	if s.generating {
		t.Fatal("Close should stop generation")
	}
	if _, next := s.Update(runPlanCmd(t, cmd)); next != nil {
		t.Error("result after Close should be ignored")
	}
	s.Close()
}

func TestTabCyclesFocus(t *testing.T) {
	s := newTestScreen(&stubGenerator{})
	s.Init()

	for want := 1; want <= fieldCount; want++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
		if s.focus != want%fieldCount {
			t.Fatalf("focus = %d, want %d", s.focus, want%fieldCount)
		}
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != fieldCount-1 {
		t.Errorf("shift+tab focus = %d", s.focus)
	}
}
