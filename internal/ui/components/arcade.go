package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all game sections
// so boxes line up.
func ContentWidth(frameWidth int) int {
	// cabinet border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CabinetFrame wraps content in a double border, centered both ways.
func CabinetFrame(p theme.Palette, content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(p.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded border at the given content width.
func Card(p theme.Palette, content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// Panel is a left-aligned Card with a heading, used for side-by-side lists.
func Panel(p theme.Palette, heading, content string, cw int, focused bool) string {
	border := p.Border
	if focused {
		border = p.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw).
		Padding(0, 1).
		Render(p.Heading().Render(heading) + "\n\n" + content)
}
