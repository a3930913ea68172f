// Package scoring accumulates stage rewards and resolves rank titles.
package scoring

import "github.com/abhisek/lessonarcade/internal/lessonplan"

// DefaultStageReward is awarded for each completed scored stage.
const DefaultStageReward = 1000

// Engine holds a session's score. The zero value starts at 0.
type Engine struct {
	score int
}

// Award adds amount to the score. Non-positive amounts are ignored so the
// score never decreases within a session.
func (e *Engine) Award(amount int) {
	if amount > 0 {
		e.score += amount
	}
}

func (e *Engine) Score() int { return e.score }

// Reset returns the score to zero.
func (e *Engine) Reset() { e.score = 0 }

// CurrentTitle scans titles in order and keeps the last one whose threshold
// is at most score, falling back to the first entry. With titles sorted
// ascending this is the highest band reached. An empty list yields "".
func CurrentTitle(score int, titles []lessonplan.Title) string {
	if len(titles) == 0 {
		return ""
	}
	current := titles[0]
	for _, t := range titles {
		if t.Threshold <= score {
			current = t
		}
	}
	return current.Name
}

// NextTitle returns the lowest-threshold title above score. ok is false once
// the top band is reached.
func NextTitle(score int, titles []lessonplan.Title) (next lessonplan.Title, ok bool) {
	for _, t := range titles {
		if t.Threshold > score && (!ok || t.Threshold < next.Threshold) {
			next, ok = t, true
		}
	}
	return next, ok
}
