package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonarcade/internal/lessonplan"
)

// Palette is the set of colors a screen renders with. Game screens project
// it from the lesson plan's color scheme.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Accent     color.Color
	Background color.Color
	Text       color.Color
	TextDim    color.Color
	Success    color.Color
	Error      color.Color
	Border     color.Color
}

// Default returns the built-in palette.
func Default() Palette {
	return Palette{
		Primary:    Primary,
		Secondary:  Secondary,
		Accent:     Accent,
		Background: BgDark,
		Text:       Text,
		TextDim:    TextDim,
		Success:    Success,
		Error:      Error,
		Border:     Border,
	}
}

// FromScheme projects a lesson plan color scheme onto the default palette.
// Values that are not #RRGGBB keep the default color.
func FromScheme(cs lessonplan.ColorScheme) Palette {
	p := Default()
	override(&p.Primary, cs.Primary)
	override(&p.Secondary, cs.Secondary)
	override(&p.Accent, cs.Accent)
	override(&p.Background, cs.Background)
	override(&p.Text, cs.Text)
	override(&p.Border, cs.Secondary)
	return p
}

func override(dst *color.Color, hex string) {
	if lessonplan.IsHexColor(hex) {
		*dst = lipgloss.Color(hex)
	}
}

func (p Palette) Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
}

func (p Palette) Heading() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
}

func (p Palette) Body() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Text)
}

func (p Palette) Dim() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.TextDim)
}

func (p Palette) Hint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.TextDim).Italic(true)
}

// Feedback styles a verdict line.
func (p Palette) Feedback(correct bool) lipgloss.Style {
	if correct {
		return lipgloss.NewStyle().Foreground(p.Success).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(p.Error).Bold(true)
}
