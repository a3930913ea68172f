package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

// Button renders a call to action. Enter activates the focused one.
type Button struct {
	Label   string
	Focused bool
}

// NewButton creates a focused button.
func NewButton(label string) Button {
	return Button{Label: label, Focused: true}
}

// View renders the button.
func (b Button) View(p theme.Palette) string {
	if b.Focused {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Background).
			Background(p.Accent).
			Padding(0, 3).
			Render("▸ " + b.Label)
	}
	return lipgloss.NewStyle().
		Foreground(p.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 2).
		Render(b.Label)
}
