package session

import "errors"

var (
	// ErrNoSession is returned by actions issued before Start or after Reset.
	ErrNoSession = errors.New("no active session")

	// ErrWrongStage is returned when an action does not apply to the current stage.
	ErrWrongStage = errors.New("action not available at this stage")

	// ErrActivityPending is returned when a scored stage is asked to finish
	// before its activity is done.
	ErrActivityPending = errors.New("activity not finished")

	// ErrNilPlan is returned by Start without a plan.
	ErrNilPlan = errors.New("lesson plan is required")
)
