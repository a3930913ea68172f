package session

import (
	"github.com/abhisek/lessonarcade/internal/activity"
	"github.com/abhisek/lessonarcade/internal/lessonplan"
)

// MsgNotEnoughConcepts is shown on a fastest finger stage that has no questions.
const MsgNotEnoughConcepts = "Not enough concepts were generated for the final challenge. Continue to see your results."

// State is a snapshot of the session for rendering. Exactly one activity
// payload is set, matching Stage.
type State struct {
	SessionID  string `json:"sessionId,omitempty"`
	Active     bool   `json:"active"`
	Stage      string `json:"stage,omitempty"`
	StageIndex int    `json:"stageIndex"`
	StageCount int    `json:"stageCount"`
	Score      int    `json:"score"`
	Title      string `json:"title,omitempty"`
	ShowHeader bool   `json:"showHeader"`

	// CompletionPending is true while a finished activity waits out the
	// display delay before the flow advances.
	CompletionPending bool `json:"completionPending"`

	Topic string            `json:"topic,omitempty"`
	Theme *lessonplan.Theme `json:"theme,omitempty"`

	Slide         *lessonplan.SlideContent `json:"slide,omitempty"`
	Chronology    *ChronologyState         `json:"chronology,omitempty"`
	Quiz          *QuizState               `json:"quiz,omitempty"`
	FastestFinger *FastestFingerState      `json:"fastestFinger,omitempty"`
}

// Kind returns the stage kind named by Stage.
func (s State) Kind() Kind {
	for k, name := range kindNames {
		if name == s.Stage {
			return k
		}
	}
	return KindWelcome
}

type ChronologyState struct {
	Pool    []lessonplan.ChronologyItem `json:"pool"`
	Target  []lessonplan.ChronologyItem `json:"target"`
	Message string                      `json:"message,omitempty"`
	Solved  bool                        `json:"solved"`
}

type QuizState struct {
	Index     int                      `json:"index"`
	Total     int                      `json:"total"`
	Question  *lessonplan.QuizQuestion `json:"question,omitempty"`
	Selection string                   `json:"selection,omitempty"`
	Feedback  *activity.Feedback       `json:"feedback,omitempty"`
	Finished  bool                     `json:"finished"`
}

type FastestFingerState struct {
	Playable bool               `json:"playable"`
	Message  string             `json:"message,omitempty"`
	Index    int                `json:"index"`
	Total    int                `json:"total"`
	Question *activity.Question `json:"question,omitempty"`
	Picked   int                `json:"picked,omitempty"`
	Feedback *activity.Feedback `json:"feedback,omitempty"`
	Finished bool               `json:"finished"`
}

func chronologyState(c *activity.Chronology) *ChronologyState {
	return &ChronologyState{
		Pool:    c.Pool(),
		Target:  c.Target(),
		Message: c.Message(),
		Solved:  c.Solved(),
	}
}

func quizState(q *activity.Quiz) *QuizState {
	st := &QuizState{
		Index:     q.Index(),
		Total:     q.Len(),
		Selection: q.Selection(),
		Feedback:  q.Feedback(),
		Finished:  q.Finished(),
	}
	if cur := q.Current(); cur != nil {
		cp := *cur
		st.Question = &cp
	}
	return st
}

func fastestFingerState(f *activity.FastestFinger) *FastestFingerState {
	st := &FastestFingerState{
		Playable: f.Playable(),
		Index:    f.Index(),
		Total:    f.Len(),
		Feedback: f.Feedback(),
		Finished: f.Finished(),
	}
	if !st.Playable {
		st.Message = MsgNotEnoughConcepts
		return st
	}
	if cur := f.Current(); cur != nil {
		cp := *cur
		st.Question = &cp
	}
	if id, ok := f.Picked(); ok {
		st.Picked = id
	}
	return st
}
