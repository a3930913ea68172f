package lessongen

import "errors"

// ErrInvalidInput is returned before any model call when the form is incomplete.
var ErrInvalidInput = errors.New("All fields must be filled out.")

// ErrGenerationFailed matches every *GenerationError.
var ErrGenerationFailed = errors.New("lesson plan generation failed")

// FailureMessage is shown to the learner for any generation failure.
const FailureMessage = "Failed to generate the lesson plan. The AI may be busy, or the content may be too short. Please try again."

// GenerationError hides the underlying cause behind a generic message.
// The cause stays reachable through Unwrap for logging.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string { return e.Message }
func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

func failed(err error) *GenerationError {
	return &GenerationError{Message: FailureMessage, Err: err}
}
