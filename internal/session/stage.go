// Package session drives a learner through the fixed sequence of game
// stages for one lesson plan.
package session

import "github.com/abhisek/lessonarcade/internal/lessonplan"

// Kind identifies what a stage shows.
type Kind int

const (
	KindWelcome Kind = iota
	KindInfoSlide
	KindChronology
	KindQuiz
	KindFastestFinger
	KindResults
)

var kindNames = map[Kind]string{
	KindWelcome:       "welcome",
	KindInfoSlide:     "info_slide",
	KindChronology:    "chronology",
	KindQuiz:          "quiz",
	KindFastestFinger: "fastest_finger",
	KindResults:       "results",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Scored reports whether completing the stage earns the stage reward.
func (k Kind) Scored() bool {
	return k == KindChronology || k == KindQuiz || k == KindFastestFinger
}

// Stage is one step of the flow. Slide is set for info slide stages only.
type Stage struct {
	Kind  Kind
	Slide *lessonplan.SlideContent
}

// flowKinds is the fixed stage order. The two info slides take plan slides 0 and 1.
var flowKinds = []Kind{
	KindWelcome,
	KindInfoSlide,
	KindChronology,
	KindInfoSlide,
	KindQuiz,
	KindFastestFinger,
	KindResults,
}

// BuildFlow returns the stage sequence for plan with its info slides
// injected in order. A missing slide leaves Slide nil.
func BuildFlow(plan *lessonplan.LessonPlan) []Stage {
	stages := make([]Stage, 0, len(flowKinds))
	slide := 0
	for _, k := range flowKinds {
		st := Stage{Kind: k}
		if k == KindInfoSlide {
			if plan != nil && slide < len(plan.InfoSlides) {
				st.Slide = &plan.InfoSlides[slide]
			}
			slide++
		}
		stages = append(stages, st)
	}
	return stages
}
