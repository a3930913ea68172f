package router

import (
	"github.com/abhisek/lessonarcade/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg stacks a screen over the active one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the screen below the active one.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen for a new one, e.g. results back
// to the lesson generator.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router keeps the screen stack. Screens that leave the stack are closed.
type Router struct {
	stack []screen.Screen
}

func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push stacks s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes and drops the active screen. The last screen is never popped.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	top := len(r.stack) - 1
	screen.Close(r.stack[top])
	r.stack[top] = nil
	r.stack = r.stack[:top]
	return nil
}

// Replace closes the active screen, puts s in its place and returns s.Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		r.stack = []screen.Screen{s}
		return s.Init()
	}
	top := len(r.stack) - 1
	if old := r.stack[top]; old != s {
		screen.Close(old)
	}
	r.stack[top] = s
	return s.Init()
}

// CloseAll closes every stacked screen, top first. Used on quit.
func (r *Router) CloseAll() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		screen.Close(r.stack[i])
	}
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}
