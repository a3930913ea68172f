package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

// TextInput is a labeled single-line field.
type TextInput struct {
	Label string
	Model textinput.Model
}

// NewTextInput creates an unfocused field.
func NewTextInput(label, placeholder, value string, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.SetWidth(width)
	ti.SetValue(value)
	return TextInput{Label: label, Model: ti}
}

// Focus focuses the field and returns the blink command.
func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }
func (t *TextInput) Blur()          { t.Model.Blur() }

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label above the field.
func (t TextInput) View(p theme.Palette) string {
	label := lipgloss.NewStyle().Foreground(p.TextDim)
	if t.Model.Focused() {
		label = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	}
	return label.Render(t.Label) + "\n" + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}
