package theme

import (
	"charm.land/lipgloss/v2"
)

// Built-in colors. Setup and any plan without a usable color scheme render
// with these; see Default and FromScheme.
var (
	Primary   = lipgloss.Color("#38BDF8")
	Secondary = lipgloss.Color("#1E293B")
	Accent    = lipgloss.Color("#FACC15")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	Border    = lipgloss.Color("#334155")
)
