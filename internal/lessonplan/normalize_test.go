package lessonplan

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNormalize_SortsTitles(t *testing.T) {
	p := Sample()
	p.Theme.Titles = []Title{
		{Threshold: 2000, Name: "C"},
		{Threshold: 0, Name: "A"},
		{Threshold: 1000, Name: "B"},
	}
	Normalize(p)

	want := []string{"A", "B", "C"}
	for i, title := range p.Theme.Titles {
		if title.Name != want[i] {
			t.Errorf("title %d = %q, want %q", i, title.Name, want[i])
		}
	}
}

func TestNormalize_ClampsLowestThreshold(t *testing.T) {
	p := Sample()
	p.Theme.Titles = []Title{{Threshold: 500, Name: "Novice"}, {Threshold: 1500, Name: "Expert"}}
	Normalize(p)

	if p.Theme.Titles[0].Threshold != 0 {
		t.Errorf("lowest threshold = %d, want 0", p.Theme.Titles[0].Threshold)
	}
	if p.Theme.Titles[1].Threshold != 1500 {
		t.Errorf("second threshold changed to %d", p.Theme.Titles[1].Threshold)
	}
}

func TestNormalize_TrimsAndCompacts(t *testing.T) {
	p := Sample()
	p.Topic = "  Moon  "
	p.FastestFinger.Concepts[0].Keywords = []string{" rocket ", "", "  "}
	p.InfoSlides[0].Paragraphs = []string{"one", " "}
	p.Quiz.Questions[0].Options[1] = " Soviet Union "
	p.Quiz.Questions[0].CorrectAnswer = "Soviet Union "
	Normalize(p)

	if p.Topic != "Moon" {
		t.Errorf("topic = %q", p.Topic)
	}
	if got := p.FastestFinger.Concepts[0].Keywords; len(got) != 1 || got[0] != "rocket" {
		t.Errorf("keywords = %q", got)
	}
	if got := p.InfoSlides[0].Paragraphs; len(got) != 1 {
		t.Errorf("paragraphs = %q", got)
	}
	if err := Validate(p); err != nil {
		t.Errorf("trimmed answer should match trimmed option: %v", err)
	}
}

func TestNormalize_SortsExtremeThresholds(t *testing.T) {
	p := Sample()
	p.Theme.Titles = []Title{
		{Threshold: math.MaxInt, Name: "Legend"},
		{Threshold: math.MinInt, Name: "Recruit"},
		{Threshold: 1000, Name: "Pilot"},
	}
	Normalize(p)

	want := []string{"Recruit", "Pilot", "Legend"}
	for i, title := range p.Theme.Titles {
		if title.Name != want[i] {
			t.Errorf("title %d = %q, want %q", i, title.Name, want[i])
		}
	}
}

func TestTitle_FractionalThreshold(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{`{"threshold": 1500.5, "name": "Navigator"}`, 1501},
		{`{"threshold": 2000.0, "name": "Navigator"}`, 2000},
		{`{"threshold": 3000, "name": "Navigator"}`, 3000},
		{`{"threshold": 1e300, "name": "Navigator"}`, math.MaxInt32},
	}
	for _, tt := range tests {
		var title Title
		if err := json.Unmarshal([]byte(tt.in), &title); err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if title.Threshold != tt.want || title.Name != "Navigator" {
			t.Errorf("%s: got %+v, want threshold %d", tt.in, title, tt.want)
		}
	}

	var title Title
	if err := json.Unmarshal([]byte(`{"threshold": "high"}`), &title); err == nil {
		t.Error("expected a string threshold to be rejected")
	}
}
