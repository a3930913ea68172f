package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

var printer = message.NewPrinter(language.English)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStats is the rank and score shown on the right of the header.
type HeaderStats struct {
	Rank      string
	Score     int
	PointName string
}

// FormatScore renders n with thousands separators.
func FormatScore(n int) string {
	return printer.Sprintf("%d", n)
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the header bar. The right side shows rank and score
// only when stats is non-nil.
func RenderHeader(p theme.Palette, title string, stats *HeaderStats, width int) string {
	left := lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Render("  LessonArcade")

	center := lipgloss.NewStyle().
		Foreground(p.Text).
		Render(title)

	right := ""
	if stats != nil {
		right = lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Render("♛ "+stats.Rank) +
			"   " +
			lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Render("◉ "+FormatScore(stats.Score)) +
			" " +
			lipgloss.NewStyle().Foreground(p.TextDim).Render(stats.PointName)
	}

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	innerWidth := width - 4 // border + padding
	if innerWidth < 0 {
		innerWidth = 0
	}

	leftGap := (innerWidth-centerLen)/2 - leftLen
	if leftGap < 1 {
		leftGap = 1
	}

	rightGap := innerWidth - leftLen - leftGap - centerLen - rightLen
	if rightGap < 1 {
		rightGap = 1
	}

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Render(content)
}

// RenderFooter renders the footer with key hints.
func RenderFooter(p theme.Palette, hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(p.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(p.TextDim).Render(h.Description)
		parts = append(parts, part)
	}

	content := "  " + strings.Join(parts, "   ")

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Render(content)
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)

	contentHeight := height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}
