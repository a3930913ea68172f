package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonarcade/internal/ui/layout"
	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

// Screen is one page of the app: the lesson generator or the game. The
// app frame draws the header and footer around View.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the header, e.g. "Stage 2: Test of Wits".
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// PaletteProvider is implemented by screens that render in their own colors.
// The header and footer follow it.
type PaletteProvider interface {
	Palette() theme.Palette
}

// HeaderStatsProvider is implemented by screens that show rank and score in
// the header. A nil result hides them.
type HeaderStatsProvider interface {
	HeaderStats() *layout.HeaderStats
}

// Closer is implemented by screens that hold subscriptions or in-flight work.
// The router calls Close when the screen leaves the stack.
type Closer interface {
	Close()
}

// Close releases s if it implements Closer.
func Close(s Screen) {
	if c, ok := s.(Closer); ok {
		c.Close()
	}
}
