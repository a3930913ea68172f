package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

// Meter renders "label  ████░░░░  40%" in width cells. frac is clamped to
// [0, 1]; the bar keeps at least four cells.
func Meter(p theme.Palette, label string, frac float64, width int) string {
	frac = min(max(frac, 0), 1)
	pct := fmt.Sprintf("  %3d%%", int(frac*100))

	head := ""
	if label != "" {
		head = lipgloss.NewStyle().Foreground(p.Text).Render(label) + "  "
	}
	cells := max(width-lipgloss.Width(head)-len(pct), 4)
	filled := int(float64(cells) * frac)

	return head +
		lipgloss.NewStyle().Foreground(p.Accent).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(p.Border).Render(strings.Repeat("░", cells-filled)) +
		lipgloss.NewStyle().Foreground(p.TextDim).Render(pct)
}
