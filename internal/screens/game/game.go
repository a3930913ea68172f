package game

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonarcade/internal/lessonplan"
	"github.com/abhisek/lessonarcade/internal/router"
	"github.com/abhisek/lessonarcade/internal/screen"
	"github.com/abhisek/lessonarcade/internal/session"
	"github.com/abhisek/lessonarcade/internal/ui/components"
	"github.com/abhisek/lessonarcade/internal/ui/layout"
	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

const (
	focusPool = iota
	focusTimeline
)

// GameScreen renders whatever stage the session is on and turns key
// presses into session actions.
type GameScreen struct {
	sess      *session.Session
	newLesson func() screen.Screen

	updates <-chan session.State
	cancel  func()

	state   session.State
	palette theme.Palette

	pool     components.List
	timeline components.List
	focus    int

	choice    components.Choice
	choiceKey string

	errMsg string
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.PaletteProvider = (*GameScreen)(nil)
var _ screen.HeaderStatsProvider = (*GameScreen)(nil)
var _ screen.Closer = (*GameScreen)(nil)

// New attaches to a started session. newLesson builds the screen shown
// after "Create New Lesson"; nil quits instead.
func New(sess *session.Session, newLesson func() screen.Screen) *GameScreen {
	updates, cancel := sess.Subscribe()
	g := &GameScreen{
		sess:      sess,
		newLesson: newLesson,
		updates:   updates,
		cancel:    cancel,
		palette:   theme.Default(),
		pool:      components.NewList(nil, "All items placed."),
		timeline:  components.NewList(nil, "Drop events here."),
	}
	g.apply(sess.State())
	return g
}

// Close ends the session subscription. Safe to call more than once.
func (g *GameScreen) Close() {
	g.cancel()
}

func (g *GameScreen) Init() tea.Cmd {
	return g.wait()
}

// wait blocks on the next pushed state. Timer-driven completions reach the
// screen this way.
func (g *GameScreen) wait() tea.Cmd {
	ch := g.updates
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return subscriptionClosedMsg{}
		}
		return stateMsg(st)
	}
}

func (g *GameScreen) Title() string {
	switch g.state.Kind() {
	case session.KindWelcome:
		return "Welcome"
	case session.KindInfoSlide:
		if g.state.Slide != nil {
			return g.state.Slide.Title
		}
		return "Briefing"
	case session.KindChronology:
		return "Stage 1: The Timeline"
	case session.KindQuiz:
		return "Stage 2: Test of Wits"
	case session.KindFastestFinger:
		return "Final Stage: Fastest Finger First!"
	case session.KindResults:
		return "Results"
	}
	return ""
}

func (g *GameScreen) Palette() theme.Palette { return g.palette }

func (g *GameScreen) HeaderStats() *layout.HeaderStats {
	if !g.state.ShowHeader || g.state.Theme == nil {
		return nil
	}
	return &layout.HeaderStats{
		Rank:      g.state.Title,
		Score:     g.state.Score,
		PointName: g.state.Theme.PointName,
	}
}

func (g *GameScreen) KeyHints() []layout.KeyHint {
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if g.state.CompletionPending {
		return []layout.KeyHint{quit}
	}
	switch g.state.Kind() {
	case session.KindChronology:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Place/Remove"},
			{Key: "Tab", Description: "Switch list"},
			{Key: "V", Description: "Verify"},
			{Key: "R", Description: "Reset"},
			quit,
		}
	case session.KindQuiz, session.KindFastestFinger:
		if g.awaitingNext() {
			return []layout.KeyHint{{Key: "Enter", Description: "Next"}, quit}
		}
		return []layout.KeyHint{
			{Key: "↑↓/A-D", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			quit,
		}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Continue"}, quit}
}

func (g *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		g.apply(session.State(msg))
		return g, g.wait()

	case subscriptionClosedMsg:
		return g, nil

	case tea.KeyPressMsg:
		return g.handleKey(msg)
	}
	return g, nil
}

func (g *GameScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if g.state.CompletionPending {
		return g, nil
	}

	var err error
	switch g.state.Kind() {
	case session.KindWelcome, session.KindInfoSlide:
		if msg.String() == "enter" {
			err = g.sess.Advance()
		}
	case session.KindChronology:
		err = g.handleChronologyKey(msg)
	case session.KindQuiz:
		err = g.handleQuizKey(msg)
	case session.KindFastestFinger:
		err = g.handleFastestFingerKey(msg)
	case session.KindResults:
		if msg.String() == "enter" {
			return g, g.createNewLesson()
		}
	}

	g.errMsg = ""
	if err != nil {
		g.errMsg = err.Error()
	}
	g.apply(g.sess.State())
	return g, nil
}

func (g *GameScreen) handleChronologyKey(msg tea.KeyPressMsg) error {
	switch msg.String() {
	case "tab", "left", "right", "h", "l":
		g.focus = 1 - g.focus
		return nil
	case "enter", "space":
		if g.focus == focusPool {
			if item, ok := g.pool.Current(); ok {
				return g.sess.PlaceItem(item.ID)
			}
			return nil
		}
		if item, ok := g.timeline.Current(); ok {
			return g.sess.UnplaceItem(item.ID)
		}
		return nil
	case "v":
		_, err := g.sess.VerifyOrder()
		return err
	case "r":
		return g.sess.ResetOrder()
	}

	if g.focus == focusPool {
		g.pool, _ = g.pool.Update(msg)
	} else {
		g.timeline, _ = g.timeline.Update(msg)
	}
	return nil
}

func (g *GameScreen) handleQuizKey(msg tea.KeyPressMsg) error {
	q := g.state.Quiz
	if q == nil || q.Finished || q.Question == nil {
		return nil
	}
	if msg.String() != "enter" {
		g.choice, _ = g.choice.Update(msg)
		return nil
	}
	if q.Feedback != nil {
		return g.sess.NextQuestion()
	}
	if err := g.sess.SelectAnswer(q.Question.Options[g.choice.Selected]); err != nil {
		return err
	}
	_, err := g.sess.SubmitAnswer()
	return err
}

func (g *GameScreen) handleFastestFingerKey(msg tea.KeyPressMsg) error {
	ff := g.state.FastestFinger
	if ff == nil || ff.Finished {
		return nil
	}
	if !ff.Playable {
		if msg.String() == "enter" {
			return g.sess.Advance()
		}
		return nil
	}
	if ff.Question == nil {
		return nil
	}
	if msg.String() != "enter" {
		g.choice, _ = g.choice.Update(msg)
		return nil
	}
	if ff.Feedback != nil {
		return g.sess.NextConcept()
	}
	_, err := g.sess.PickConcept(ff.Question.Options[g.choice.Selected].ConceptID)
	return err
}

func (g *GameScreen) createNewLesson() tea.Cmd {
	g.sess.Reset()
	if g.newLesson == nil {
		g.Close()
		return tea.Quit
	}
	next := g.newLesson()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (g *GameScreen) awaitingNext() bool {
	switch {
	case g.state.Quiz != nil:
		return g.state.Quiz.Feedback != nil
	case g.state.FastestFinger != nil:
		return g.state.FastestFinger.Feedback != nil
	}
	return false
}

// apply adopts a snapshot and rebuilds the widgets that mirror it.
func (g *GameScreen) apply(st session.State) {
	g.state = st
	if st.Theme != nil {
		g.palette = theme.FromScheme(st.Theme.ColorScheme)
	}

	if c := st.Chronology; c != nil {
		g.pool.SetItems(listItems(c.Pool))
		g.timeline.SetItems(listItems(c.Target))
		if len(c.Pool) == 0 && len(c.Target) > 0 {
			g.focus = focusTimeline
		}
		if len(c.Target) == 0 {
			g.focus = focusPool
		}
	}

	switch {
	case st.Quiz != nil && st.Quiz.Question != nil:
		q := st.Quiz
		g.syncChoice(fmt.Sprintf("quiz/%d", q.Index), q.Question.Options)
		if q.Feedback != nil {
			g.choice.Lock(slices.Index(q.Question.Options, q.Selection), slices.Index(q.Question.Options, q.Question.CorrectAnswer))
		}
	case st.FastestFinger != nil && st.FastestFinger.Question != nil:
		ff := st.FastestFinger
		labels := make([]string, len(ff.Question.Options))
		ids := make([]int, len(ff.Question.Options))
		for i, o := range ff.Question.Options {
			labels[i] = strings.Join(o.Keywords, ", ")
			ids[i] = o.ConceptID
		}
		g.syncChoice(fmt.Sprintf("ff/%d", ff.Index), labels)
		if ff.Feedback != nil {
			g.choice.Lock(slices.Index(ids, ff.Picked), slices.Index(ids, ff.Question.CorrectConceptID))
		}
	}
}

// syncChoice starts a fresh option list when the question changes.
func (g *GameScreen) syncChoice(key string, options []string) {
	if key == g.choiceKey {
		return
	}
	g.choiceKey = key
	g.choice = components.NewChoice(options)
}

func listItems(items []lessonplan.ChronologyItem) []components.ListItem {
	out := make([]components.ListItem, len(items))
	for i, it := range items {
		out[i] = components.ListItem{ID: it.ID, Label: it.Text}
	}
	return out
}
