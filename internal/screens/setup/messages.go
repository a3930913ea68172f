package setup

import "github.com/abhisek/lessonarcade/internal/lessonplan"

// planReadyMsg is sent when generation finishes. attempt ties the result to
// the submission that started it so a cancelled run is ignored.
type planReadyMsg struct {
	attempt int
	Plan    *lessonplan.LessonPlan
	Err     error
}
