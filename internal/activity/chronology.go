package activity

import (
	"slices"

	"github.com/abhisek/lessonarcade/internal/lessonplan"
)

// Outcome classifies a chronology verification attempt.
type Outcome string

const (
	OutcomeIncomplete Outcome = "incomplete"
	OutcomeWrongOrder Outcome = "wrong_order"
	OutcomeCorrect    Outcome = "correct"
)

const (
	MsgPlaceAll   = "Please place all items on the timeline."
	MsgOrderRight = "Excellent! The order is correct. Proceeding..."
	MsgOrderWrong = "Not quite right. Incorrect items have been returned."
)

// VerifyResult reports what a Verify call decided.
type VerifyResult struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
	// Kept is the length of the correct prefix left on the timeline.
	Kept int `json:"kept"`
}

// Chronology checks a learner's ordering of events against the canonical
// order. Every item is always in exactly one of Pool or Target.
type Chronology struct {
	canonical []lessonplan.ChronologyItem
	pool      []lessonplan.ChronologyItem
	target    []lessonplan.ChronologyItem
	shuffler  Shuffler
	solved    bool
	message   string
}

// NewChronology starts with every item in a shuffled pool and an empty timeline.
func NewChronology(items []lessonplan.ChronologyItem, s Shuffler) *Chronology {
	c := &Chronology{
		canonical: slices.Clone(items),
		shuffler:  s,
	}
	c.pool = shuffled(s, c.canonical)
	return c
}

// Pool returns the items not yet placed, in display order.
func (c *Chronology) Pool() []lessonplan.ChronologyItem { return slices.Clone(c.pool) }

// Target returns the learner's timeline.
func (c *Chronology) Target() []lessonplan.ChronologyItem { return slices.Clone(c.target) }

// Len is the number of items in the activity.
func (c *Chronology) Len() int { return len(c.canonical) }

func (c *Chronology) Solved() bool    { return c.solved }
func (c *Chronology) CanVerify() bool { return !c.solved }
func (c *Chronology) Message() string { return c.message }

// Place moves the item with id from the pool to the end of the timeline.
// It reports false when the item is not in the pool or the order is solved.
func (c *Chronology) Place(id int) bool {
	if c.solved {
		return false
	}
	item, ok := take(&c.pool, id)
	if !ok {
		return false
	}
	c.target = append(c.target, item)
	return true
}

// Unplace moves the item with id from the timeline back to the pool.
func (c *Chronology) Unplace(id int) bool {
	if c.solved {
		return false
	}
	item, ok := take(&c.target, id)
	if !ok {
		return false
	}
	c.pool = append(c.pool, item)
	return true
}

// Verify compares the timeline with the canonical order. An incomplete
// timeline changes nothing. On a mismatch at position k the correct prefix
// stays and everything after it is shuffled back into the pool together
// with whatever was already there.
func (c *Chronology) Verify() VerifyResult {
	if c.solved {
		return VerifyResult{Outcome: OutcomeCorrect, Message: MsgOrderRight, Kept: len(c.target)}
	}

	if len(c.target) != len(c.canonical) {
		c.message = MsgPlaceAll
		return VerifyResult{Outcome: OutcomeIncomplete, Message: c.message, Kept: len(c.target)}
	}

	k := firstMismatch(c.target, c.canonical)
	if k < 0 {
		c.solved = true
		c.message = MsgOrderRight
		return VerifyResult{Outcome: OutcomeCorrect, Message: c.message, Kept: len(c.target)}
	}

	returned := c.target[k:]
	c.target = slices.Clone(c.target[:k])
	c.pool = shuffled(c.shuffler, append(slices.Clone(c.pool), returned...))
	c.message = MsgOrderWrong
	return VerifyResult{Outcome: OutcomeWrongOrder, Message: c.message, Kept: k}
}

// Reset clears the timeline and reshuffles every item into the pool.
// It is a no-op once the order is solved.
func (c *Chronology) Reset() {
	if c.solved {
		return
	}
	c.target = nil
	c.pool = shuffled(c.shuffler, c.canonical)
	c.message = ""
}

// firstMismatch returns the first index where ids differ, or -1.
func firstMismatch(got, want []lessonplan.ChronologyItem) int {
	for i := range got {
		if got[i].ID != want[i].ID {
			return i
		}
	}
	return -1
}

func take(items *[]lessonplan.ChronologyItem, id int) (lessonplan.ChronologyItem, bool) {
	i := slices.IndexFunc(*items, func(it lessonplan.ChronologyItem) bool { return it.ID == id })
	if i < 0 {
		return lessonplan.ChronologyItem{}, false
	}
	item := (*items)[i]
	*items = slices.Delete(*items, i, i+1)
	return item, true
}
