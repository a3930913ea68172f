package activity

import (
	"slices"

	"github.com/abhisek/lessonarcade/internal/lessonplan"
)

const (
	// MinConcepts is the smallest pool that yields any questions.
	MinConcepts = 3

	MaxQuestions       = 4
	OptionsPerQuestion = 3
)

// Option is one keyword set offered as an answer.
type Option struct {
	ConceptID int      `json:"conceptId"`
	Keywords  []string `json:"keywords"`
}

// Question asks which keyword set belongs to the concept named in Prompt.
type Question struct {
	Prompt           string   `json:"prompt"`
	Options          []Option `json:"options"`
	CorrectConceptID int      `json:"correctConceptId"`
}

// SynthesizeQuestions builds up to MaxQuestions questions from a shuffled
// concept pool. Each question offers the correct concept plus distractors
// drawn from the rest of the pool, in shuffled order. Pools smaller than
// MinConcepts produce no questions.
func SynthesizeQuestions(concepts []lessonplan.FastestFingerConcept, s Shuffler) []Question {
	if len(concepts) < MinConcepts {
		return nil
	}

	pool := shuffled(s, concepts)
	n := min(MaxQuestions, len(pool))
	questions := make([]Question, 0, n)

	for _, correct := range pool[:n] {
		others := make([]lessonplan.FastestFingerConcept, 0, len(concepts)-1)
		for _, c := range concepts {
			if c.ID != correct.ID {
				others = append(others, c)
			}
		}
		distractors := shuffled(s, others)[:min(OptionsPerQuestion-1, len(others))]

		options := make([]Option, 0, len(distractors)+1)
		options = append(options, toOption(correct))
		for _, d := range distractors {
			options = append(options, toOption(d))
		}

		questions = append(questions, Question{
			Prompt:           correct.Name,
			Options:          shuffled(s, options),
			CorrectConceptID: correct.ID,
		})
	}
	return questions
}

func toOption(c lessonplan.FastestFingerConcept) Option {
	return Option{ConceptID: c.ID, Keywords: slices.Clone(c.Keywords)}
}

// FastestFinger runs the synthesized questions. Picking an option grades it
// immediately and locks the question.
type FastestFinger struct {
	questions []Question
	index     int
	picked    int
	feedback  *Feedback
	finished  bool
	correct   int
}

// NewFastestFinger synthesizes the question set for concepts.
func NewFastestFinger(concepts []lessonplan.FastestFingerConcept, s Shuffler) *FastestFinger {
	return &FastestFinger{questions: SynthesizeQuestions(concepts, s)}
}

// Playable reports whether any questions could be built.
func (f *FastestFinger) Playable() bool { return len(f.questions) > 0 }

func (f *FastestFinger) Len() int       { return len(f.questions) }
func (f *FastestFinger) Index() int     { return f.index }
func (f *FastestFinger) Finished() bool { return f.finished }

// Questions returns the synthesized set.
func (f *FastestFinger) Questions() []Question { return slices.Clone(f.questions) }

// Current returns the question on screen, or nil when there is none.
func (f *FastestFinger) Current() *Question {
	if f.index >= len(f.questions) {
		return nil
	}
	return &f.questions[f.index]
}

// Picked returns the chosen concept id and whether one has been chosen.
func (f *FastestFinger) Picked() (int, bool) { return f.picked, f.feedback != nil }

func (f *FastestFinger) Feedback() *Feedback { return f.feedback }

func (f *FastestFinger) CorrectCount() int { return f.correct }

// Pick grades conceptID against the current question.
func (f *FastestFinger) Pick(conceptID int) (*Feedback, error) {
	if f.finished {
		return nil, ErrFinished
	}
	if f.feedback != nil {
		return nil, ErrAnswerLocked
	}
	cur := f.Current()
	if cur == nil || !slices.ContainsFunc(cur.Options, func(o Option) bool { return o.ConceptID == conceptID }) {
		return nil, ErrUnknownOption
	}

	f.picked = conceptID
	fb := &Feedback{Correct: conceptID == cur.CorrectConceptID}
	if fb.Correct {
		fb.Message = MsgCorrect
		f.correct++
	} else {
		fb.Message = "Not quite. That set belongs to another concept."
	}
	f.feedback = fb
	return fb, nil
}

// Next moves past an answered question, reporting true once finished.
func (f *FastestFinger) Next() (bool, error) {
	if f.finished {
		return true, ErrFinished
	}
	if f.feedback == nil {
		return false, ErrNoFeedback
	}
	f.feedback = nil
	f.picked = 0
	if f.index < len(f.questions)-1 {
		f.index++
		return false, nil
	}
	f.finished = true
	return true, nil
}
