package activity

import "errors"

var (
	// ErrNoSelection is returned when an answer is submitted without a selection.
	ErrNoSelection = errors.New("no option selected")

	// ErrAnswerLocked is returned when the current question already has feedback.
	ErrAnswerLocked = errors.New("answer already locked in")

	// ErrNoFeedback is returned when advancing before the current question is answered.
	ErrNoFeedback = errors.New("current question has not been answered")

	// ErrUnknownOption is returned for a choice that is not among the current options.
	ErrUnknownOption = errors.New("unknown option")

	// ErrFinished is returned for any action after the activity finished.
	ErrFinished = errors.New("activity already finished")
)

// Feedback is the graded result of one answered question.
type Feedback struct {
	Correct bool   `json:"correct"`
	Message string `json:"message"`
}
