package app

import (
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonarcade/internal/lessonplan"
	"github.com/abhisek/lessonarcade/internal/logger"
	"github.com/abhisek/lessonarcade/internal/router"
	"github.com/abhisek/lessonarcade/internal/screen"
	"github.com/abhisek/lessonarcade/internal/screens/game"
	"github.com/abhisek/lessonarcade/internal/screens/setup"
	"github.com/abhisek/lessonarcade/internal/session"
	"github.com/abhisek/lessonarcade/internal/ui/layout"
	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

// ErrNothingToPlay is returned when neither a generator nor a plan is given.
var ErrNothingToPlay = errors.New("no lesson plan and no generator configured")

// Options holds the dependencies of the terminal host.
type Options struct {
	Session *session.Session

	// Generator backs the lesson setup screen. Nil disables it; a Plan is
	// then required and finishing the game quits.
	Generator setup.Generator

	// Plan, when set, skips setup and starts the game directly.
	Plan *lessonplan.LessonPlan

	Logger *logger.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel builds the first screen from opts.
func newAppModel(opts Options) (AppModel, error) {
	if opts.Generator == nil && opts.Plan == nil {
		return AppModel{}, ErrNothingToPlay
	}
	sess := opts.Session
	if sess == nil {
		sess = session.New(session.Options{Logger: opts.Logger})
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	var newSetup func() screen.Screen
	play := func(plan *lessonplan.LessonPlan) screen.Screen {
		id, _ := sess.Start(plan)
		log.Info("lesson started", "session_id", id, "topic", plan.Topic)
		return game.New(sess, newSetup)
	}
	if opts.Generator != nil {
		newSetup = func() screen.Screen { return setup.New(opts.Generator, play) }
	}

	var first screen.Screen
	if opts.Plan != nil {
		first = play(opts.Plan)
	} else {
		first = newSetup()
	}
	return AppModel{router: router.New(first)}, nil
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	frame, palette := m.render()
	v.SetContent(frame)
	v.BackgroundColor = palette.Background
	return v
}

// render draws header, active screen and footer in the active palette.
func (m AppModel) render() (string, theme.Palette) {
	active := m.router.Active()
	title := ""
	palette := theme.Default()
	var stats *layout.HeaderStats
	footerHints := []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if active != nil {
		title = active.Title()
		if pp, ok := active.(screen.PaletteProvider); ok {
			palette = pp.Palette()
		}
		if sp, ok := active.(screen.HeaderStatsProvider); ok {
			stats = sp.HeaderStats()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}

	header := layout.RenderHeader(palette, title, stats, m.width)
	footer := layout.RenderFooter(palette, footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height), palette
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	model, err := newAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
