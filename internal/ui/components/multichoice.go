package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// Choice is an option list that shows grading once an answer is locked.
// Selected is the cursor; Chosen is the locked answer, -1 before locking.
type Choice struct {
	Options  []string
	Selected int
	Chosen   int
	Correct  int
}

// NewChoice creates an unanswered choice list. correct may be -1 when the
// grader lives elsewhere and reports back through Lock.
func NewChoice(options []string) Choice {
	return Choice{Options: options, Chosen: -1, Correct: -1}
}

// Locked reports whether an answer has been graded.
func (c Choice) Locked() bool { return c.Chosen >= 0 }

// Lock records the chosen and the correct index.
func (c *Choice) Lock(chosen, correct int) {
	c.Chosen = chosen
	c.Correct = correct
}

// Update moves the cursor with arrows or jumps with a letter or digit key.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Locked() {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	default:
		if len(key) == 1 {
			idx := -1
			switch {
			case key[0] >= '1' && key[0] <= '9':
				idx = int(key[0] - '1')
			case key[0] >= 'a' && key[0] <= 'f':
				idx = int(key[0] - 'a')
			}
			if idx >= 0 && idx < len(c.Options) {
				c.Selected = idx
			}
		}
	}
	return c, nil
}

// View renders the options, coloring the correct and wrong answers once locked.
func (c Choice) View(p theme.Palette) string {
	var s string
	for i, opt := range c.Options {
		label := "?"
		if i < len(choiceLabels) {
			label = choiceLabels[i]
		}
		prefix := "  "
		if i == c.Selected && !c.Locked() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case c.Locked() && i == c.Correct:
			style = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
		case c.Locked() && i == c.Chosen:
			style = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
		case c.Locked():
			style = lipgloss.NewStyle().Foreground(p.TextDim)
		case i == c.Selected:
			style = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
		default:
			style = lipgloss.NewStyle().Foreground(p.Text)
		}
		s += style.Render(line) + "\n"
	}
	return s
}
