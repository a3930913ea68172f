package session

import (
	"github.com/abhisek/lessonarcade/internal/lessonplan"
	"github.com/abhisek/lessonarcade/internal/scoring"
)

// Controller is the linear stage machine for one plan. It is not safe for
// concurrent use; Session serializes access to it.
type Controller struct {
	plan   *lessonplan.LessonPlan
	stages []Stage
	index  int
	reward int
	score  scoring.Engine
}

// NewController starts at the welcome stage. A non-positive reward uses
// scoring.DefaultStageReward.
func NewController(plan *lessonplan.LessonPlan, reward int) *Controller {
	if reward <= 0 {
		reward = scoring.DefaultStageReward
	}
	return &Controller{
		plan:   plan,
		stages: BuildFlow(plan),
		reward: reward,
	}
}

func (c *Controller) Index() int                   { return c.index }
func (c *Controller) Len() int                     { return len(c.stages) }
func (c *Controller) Current() Stage               { return c.stages[c.index] }
func (c *Controller) Terminal() bool               { return c.index == len(c.stages)-1 }
func (c *Controller) Score() int                   { return c.score.Score() }
func (c *Controller) Reward() int                  { return c.reward }
func (c *Controller) Plan() *lessonplan.LessonPlan { return c.plan }

// Title is the rank for the current score.
func (c *Controller) Title() string {
	return scoring.CurrentTitle(c.score.Score(), c.plan.Theme.Titles)
}

// ShowHeader reports whether the score header belongs on the current stage.
func (c *Controller) ShowHeader() bool {
	k := c.Current().Kind
	return k != KindWelcome && k != KindResults
}

// Advance moves to the next stage. It is a no-op at the terminal stage and
// reports whether the index changed.
func (c *Controller) Advance() bool {
	if c.Terminal() {
		return false
	}
	c.index++
	return true
}

// CompleteActivity awards the stage reward and advances. It fails with
// ErrWrongStage on stages that are not scored.
func (c *Controller) CompleteActivity() error {
	if !c.Current().Kind.Scored() {
		return ErrWrongStage
	}
	c.score.Award(c.reward)
	c.Advance()
	return nil
}
