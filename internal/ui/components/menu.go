package components

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

// ListItem is one row of a List.
type ListItem struct {
	ID    int
	Label string
}

// List is a vertical list with a cursor. It has no actions of its own; the
// owning screen reads Current on Enter.
type List struct {
	Items    []ListItem
	Selected int
	Empty    string
}

// NewList creates a list with the cursor on the first item.
func NewList(items []ListItem, empty string) List {
	return List{Items: items, Empty: empty}
}

// SetItems replaces the rows and keeps the cursor in range.
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	if l.Selected >= len(items) {
		l.Selected = len(items) - 1
	}
	if l.Selected < 0 {
		l.Selected = 0
	}
}

// Current returns the item under the cursor.
func (l List) Current() (ListItem, bool) {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return ListItem{}, false
	}
	return l.Items[l.Selected], true
}

// Update handles cursor movement.
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return l, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if l.Selected > 0 {
			l.Selected--
		}
	case "down", "j":
		if l.Selected < len(l.Items)-1 {
			l.Selected++
		}
	}
	return l, nil
}

// View renders the list. The cursor is drawn only when focused.
func (l List) View(p theme.Palette, focused bool, numbered bool) string {
	if len(l.Items) == 0 {
		return p.Hint().Render(l.Empty)
	}
	var s string
	for i, item := range l.Items {
		label := item.Label
		if numbered {
			label = lipgloss.NewStyle().Foreground(p.Accent).Render(strconv.Itoa(i+1)+".") + " " + label
		}
		if focused && i == l.Selected {
			s += lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Render("▸ "+label) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(p.Text).Render("  "+label) + "\n"
		}
	}
	return s
}
