package activity

import (
	"slices"

	"github.com/abhisek/lessonarcade/internal/lessonplan"
)

// MsgCorrect is the feedback for a right answer.
const MsgCorrect = "Correct!"

// Quiz grades a sequence of single-choice questions one at a time.
// Per-question correctness is only used for feedback.
type Quiz struct {
	questions []lessonplan.QuizQuestion
	index     int
	selection string
	feedback  *Feedback
	finished  bool
	correct   int
}

// NewQuiz starts at the first question with nothing selected.
func NewQuiz(questions []lessonplan.QuizQuestion) *Quiz {
	return &Quiz{questions: slices.Clone(questions)}
}

func (q *Quiz) Len() int       { return len(q.questions) }
func (q *Quiz) Index() int     { return q.index }
func (q *Quiz) Finished() bool { return q.finished }

// Current returns the question on screen, or nil when the quiz is empty.
func (q *Quiz) Current() *lessonplan.QuizQuestion {
	if q.index >= len(q.questions) {
		return nil
	}
	return &q.questions[q.index]
}

// Selection returns the tentative choice, or "" if none.
func (q *Quiz) Selection() string { return q.selection }

// Feedback returns the grade for the current question once submitted.
func (q *Quiz) Feedback() *Feedback { return q.feedback }

// CorrectCount is the number of questions answered correctly so far.
func (q *Quiz) CorrectCount() int { return q.correct }

// Select records a tentative choice. It is rejected once the current answer is locked.
func (q *Quiz) Select(option string) error {
	if q.finished {
		return ErrFinished
	}
	if q.feedback != nil {
		return ErrAnswerLocked
	}
	cur := q.Current()
	if cur == nil || option == "" || !slices.Contains(cur.Options, option) {
		return ErrUnknownOption
	}
	q.selection = option
	return nil
}

// Submit grades the selection by exact string match and locks the answer.
func (q *Quiz) Submit() (*Feedback, error) {
	if q.finished {
		return nil, ErrFinished
	}
	if q.feedback != nil {
		return nil, ErrAnswerLocked
	}
	if q.selection == "" {
		return nil, ErrNoSelection
	}
	cur := q.Current()
	fb := &Feedback{Correct: q.selection == cur.CorrectAnswer}
	if fb.Correct {
		fb.Message = MsgCorrect
		q.correct++
	} else {
		fb.Message = "Not quite. The correct answer was: " + cur.CorrectAnswer
	}
	q.feedback = fb
	return fb, nil
}

// Next moves past an answered question. It reports true when that was the
// last question and the quiz is now finished.
func (q *Quiz) Next() (bool, error) {
	if q.finished {
		return true, ErrFinished
	}
	if q.feedback == nil {
		return false, ErrNoFeedback
	}
	q.selection = ""
	q.feedback = nil
	if q.index < len(q.questions)-1 {
		q.index++
		return false, nil
	}
	q.finished = true
	return true, nil
}
