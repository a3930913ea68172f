package activity

import (
	"errors"
	"slices"
	"testing"
)

func TestSynthesizeQuestions_TooFewConcepts(t *testing.T) {
	for n := 0; n < MinConcepts; n++ {
		if qs := SynthesizeQuestions(concepts(n), NewShuffler(1)); len(qs) != 0 {
			t.Errorf("%d concepts: expected no questions, got %d", n, len(qs))
		}
	}
	if NewFastestFinger(concepts(2), NewShuffler(1)).Playable() {
		t.Error("two concepts should not be playable")
	}
}

func TestSynthesizeQuestions_Counts(t *testing.T) {
	tests := []struct {
		concepts  int
		questions int
	}{
		{3, 3},
		{4, 4},
		{6, 4},
	}
	for _, tt := range tests {
		qs := SynthesizeQuestions(concepts(tt.concepts), NewShuffler(uint64(tt.concepts)))
		if len(qs) != tt.questions {
			t.Errorf("%d concepts: got %d questions, want %d", tt.concepts, len(qs), tt.questions)
		}
	}
}

func TestSynthesizeQuestions_OptionIntegrity(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		pool := concepts(5)
		qs := SynthesizeQuestions(pool, NewShuffler(seed))

		var prompts []string
		for _, q := range qs {
			prompts = append(prompts, q.Prompt)
			if len(q.Options) != OptionsPerQuestion {
				t.Fatalf("seed %d: %d options", seed, len(q.Options))
			}

			var seen []int
			correct := 0
			for _, o := range q.Options {
				if slices.Contains(seen, o.ConceptID) {
					t.Fatalf("seed %d: duplicate option %d", seed, o.ConceptID)
				}
				seen = append(seen, o.ConceptID)
				if o.ConceptID == q.CorrectConceptID {
					correct++
				}
				want := pool[o.ConceptID-1].Keywords
				if !slices.Equal(o.Keywords, want) {
					t.Fatalf("seed %d: option %d keywords %v, want %v", seed, o.ConceptID, o.Keywords, want)
				}
			}
			if correct != 1 {
				t.Fatalf("seed %d: %d correct options", seed, correct)
			}
			if pool[q.CorrectConceptID-1].Name != q.Prompt {
				t.Fatalf("seed %d: prompt %q does not match concept %d", seed, q.Prompt, q.CorrectConceptID)
			}
		}

		slices.Sort(prompts)
		if len(slices.Compact(prompts)) != len(qs) {
			t.Fatalf("seed %d: prompts repeat", seed)
		}
	}
}

func TestFastestFinger_Flow(t *testing.T) {
	f := NewFastestFinger(concepts(3), identity{})
	if !f.Playable() || f.Len() != 3 {
		t.Fatalf("expected 3 questions, got %d", f.Len())
	}
	if _, err := f.Next(); !errors.Is(err, ErrNoFeedback) {
		t.Errorf("expected ErrNoFeedback, got %v", err)
	}

	cur := f.Current()
	if _, err := f.Pick(99); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("expected ErrUnknownOption, got %v", err)
	}
	fb, err := f.Pick(cur.CorrectConceptID)
	if err != nil || !fb.Correct {
		t.Fatalf("Pick() = %+v, %v", fb, err)
	}
	if _, err := f.Pick(cur.CorrectConceptID); !errors.Is(err, ErrAnswerLocked) {
		t.Errorf("expected ErrAnswerLocked, got %v", err)
	}
	if id, ok := f.Picked(); !ok || id != cur.CorrectConceptID {
		t.Errorf("Picked() = %d, %v", id, ok)
	}

	for i := 1; i < f.Len(); i++ {
		if done, _ := f.Next(); done {
			t.Fatalf("finished early at %d", i)
		}
		q := f.Current()
		wrong := q.Options[0].ConceptID
		if wrong == q.CorrectConceptID {
			wrong = q.Options[1].ConceptID
		}
		if fb, _ := f.Pick(wrong); fb.Correct {
			t.Error("expected wrong pick")
		}
	}

	done, err := f.Next()
	if err != nil || !done || !f.Finished() {
		t.Fatalf("Next() = %v, %v", done, err)
	}
	if f.CorrectCount() != 1 {
		t.Errorf("correct = %d", f.CorrectCount())
	}
}
