package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

const bannerArt = `╦  ╔═╗╔═╗╔═╗╔═╗╔╗╔  ╔═╗╦═╗╔═╗╔═╗╔╦╗╔═╗
║  ║╣ ╚═╗╚═╗║ ║║║║  ╠═╣╠╦╝║  ╠═╣ ║║║╣
╩═╝╚═╝╚═╝╚═╝╚═╝╝╚╝  ╩ ╩╩╚═╚═╝╩ ╩═╩╝╚═╝`

const bannerCompact = "L E S S O N   A R C A D E"

// RenderBanner returns the LessonArcade banner in the primary color.
// Narrow or short screens get the one-line fallback.
func RenderBanner(p theme.Palette, width, height int) string {
	style := lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	if width < 44 || height < 36 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
