package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestList_Navigation(t *testing.T) {
	l := NewList([]ListItem{{ID: 1, Label: "one"}, {ID: 2, Label: "two"}}, "empty")

	l, _ = l.Update(key('j'))
	cur, ok := l.Current()
	if !ok || cur.ID != 2 {
		t.Fatalf("current = %+v, want id 2", cur)
	}
	l, _ = l.Update(key('j'))
	if l.Selected != 1 {
		t.Errorf("selected = %d, want clamp at 1", l.Selected)
	}

	l.SetItems([]ListItem{{ID: 3, Label: "three"}})
	if l.Selected != 0 {
		t.Errorf("selected = %d after shrink", l.Selected)
	}
	l.SetItems(nil)
	if _, ok := l.Current(); ok {
		t.Error("empty list has no current item")
	}
	if !strings.Contains(l.View(theme.Default(), true, false), "empty") {
		t.Error("empty list should show placeholder")
	}
}

func TestChoice_KeysAndLock(t *testing.T) {
	c := NewChoice([]string{"a", "b", "c", "d"})

	c, _ = c.Update(key('3'))
	if c.Selected != 2 {
		t.Errorf("selected = %d, want 2", c.Selected)
	}
	c, _ = c.Update(key('b'))
	if c.Selected != 1 {
		t.Errorf("selected = %d, want 1", c.Selected)
	}

	c.Lock(1, 3)
	c, _ = c.Update(key('k'))
	if c.Selected != 1 {
		t.Error("cursor moved after lock")
	}
	if !c.Locked() {
		t.Error("expected locked")
	}
}

func TestMeter_Clamps(t *testing.T) {
	full := Meter(theme.Default(), "", 1.5, 20)
	if strings.Contains(full, "░") || !strings.Contains(full, "100%") {
		t.Errorf("overfull meter = %q", full)
	}
	empty := Meter(theme.Default(), "Next: Navigator", -1, 10)
	if strings.Contains(empty, "█") || !strings.Contains(empty, "0%") {
		t.Errorf("negative meter = %q", empty)
	}
	if got := strings.Count(empty, "░"); got != 4 {
		t.Errorf("narrow meter has %d cells, want 4", got)
	}
}

func TestRenderBanner_CompactFallback(t *testing.T) {
	p := theme.Default()
	if got := RenderBanner(p, 40, 50); !strings.Contains(got, bannerCompact) {
		t.Errorf("narrow banner = %q, want compact", got)
	}
	if got := RenderBanner(p, 120, 20); !strings.Contains(got, bannerCompact) {
		t.Errorf("short banner = %q, want compact", got)
	}
	if got := RenderBanner(p, 120, 50); strings.Contains(got, bannerCompact) {
		t.Error("roomy screen should show the full banner")
	}
}
