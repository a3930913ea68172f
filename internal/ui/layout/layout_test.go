package layout

import (
	"strings"
	"testing"

	"github.com/abhisek/lessonarcade/internal/ui/theme"
)

func TestFormatScore(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{3000, "3,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.in); got != tt.want {
			t.Errorf("FormatScore(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderHeader_Stats(t *testing.T) {
	out := RenderHeader(theme.Default(), "Quiz", &HeaderStats{
		Rank:      "Astronaut",
		Score:     3000,
		PointName: "Mission Points",
	}, 100)

	for _, want := range []string{"LessonArcade", "Quiz", "Astronaut", "3,000", "Mission Points"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderHeader_NoStats(t *testing.T) {
	out := RenderHeader(theme.Default(), "Welcome", nil, 100)
	if strings.Contains(out, "♛") {
		t.Error("header shows rank without stats")
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 30) || !IsTooSmall(100, 23) {
		t.Error("expected too small")
	}
	if IsTooSmall(80, 24) {
		t.Error("80x24 should fit")
	}
}
