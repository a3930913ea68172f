package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lessonarcade/internal/activity"
	"github.com/abhisek/lessonarcade/internal/lessonplan"
	"github.com/abhisek/lessonarcade/internal/logger"
	"github.com/abhisek/lessonarcade/internal/scoring"
)

// DefaultCompletionDelay is how long success feedback stays on screen
// before a finished activity advances the flow.
const DefaultCompletionDelay = 2 * time.Second

// Options configures a Session. Zero values select defaults.
type Options struct {
	Reward          int
	CompletionDelay time.Duration
	Scheduler       Scheduler
	Shuffler        activity.Shuffler
	Logger          *logger.Logger
}

// Session is the host boundary around a Controller and the activity of
// the current stage. All methods are safe for concurrent use.
type Session struct {
	mu   sync.Mutex
	opts Options
	log  *logger.Logger

	id    string
	ctrl  *Controller
	chron *activity.Chronology
	quiz  *activity.Quiz
	ff    *activity.FastestFinger

	// epoch invalidates scheduled completions on start, reset and completion.
	epoch   uint64
	pending Timer

	subs    map[int]chan State
	nextSub int
}

// New returns an idle session.
func New(opts Options) *Session {
	if opts.Reward <= 0 {
		opts.Reward = scoring.DefaultStageReward
	}
	if opts.CompletionDelay < 0 {
		opts.CompletionDelay = 0
	} else if opts.CompletionDelay == 0 {
		opts.CompletionDelay = DefaultCompletionDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = ClockScheduler()
	}
	if opts.Shuffler == nil {
		opts.Shuffler = activity.RandomShuffler()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		opts: opts,
		log:  log.With("component", "session"),
		subs: make(map[int]chan State),
	}
}

// Start discards any current session and begins plan at the welcome stage.
// The plan is used as given; callers ingest and validate it first.
func (s *Session) Start(plan *lessonplan.LessonPlan) (string, error) {
	if plan == nil {
		return "", ErrNilPlan
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPendingLocked()
	s.id = uuid.NewString()
	s.ctrl = NewController(plan, s.opts.Reward)
	s.enterStageLocked()
	s.log.Info("session started", "session_id", s.id, "topic", plan.Topic)
	s.publishLocked()
	return s.id, nil
}

// Reset discards the plan, flow position and score. A completion that was
// waiting on its delay never fires.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return
	}
	s.cancelPendingLocked()
	s.log.Info("session reset", "session_id", s.id, "score", s.ctrl.Score())
	s.id = ""
	s.ctrl = nil
	s.chron, s.quiz, s.ff = nil, nil, nil
	s.publishLocked()
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Advance moves past a stage that is not scored. The fastest finger stage
// may also be advanced when it has no questions; it earns nothing.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return ErrNoSession
	}
	k := s.ctrl.Current().Kind
	if k.Scored() && !(k == KindFastestFinger && !s.ff.Playable()) {
		return ErrWrongStage
	}
	if !s.ctrl.Advance() {
		return nil
	}
	if k == KindFastestFinger {
		s.log.Warn("fastest finger skipped", "session_id", s.id, "reason", "not enough concepts")
	}
	s.enterStageLocked()
	s.publishLocked()
	return nil
}

// CompleteCurrentActivity finishes a scored stage whose activity is done
// without waiting for the display delay.
func (s *Session) CompleteCurrentActivity() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return ErrNoSession
	}
	if !s.ctrl.Current().Kind.Scored() {
		return ErrWrongStage
	}
	if !s.activityDoneLocked() {
		return ErrActivityPending
	}
	s.completeLocked()
	return nil
}

// PlaceItem moves a chronology item from the pool onto the timeline.
// Unknown or already placed items are ignored.
func (s *Session) PlaceItem(id int) error {
	return s.chronology(func(c *activity.Chronology) { c.Place(id) })
}

// UnplaceItem moves a chronology item from the timeline back to the pool.
func (s *Session) UnplaceItem(id int) error {
	return s.chronology(func(c *activity.Chronology) { c.Unplace(id) })
}

// ResetOrder clears the timeline.
func (s *Session) ResetOrder() error {
	return s.chronology(func(c *activity.Chronology) { c.Reset() })
}

// VerifyOrder checks the timeline. A correct order schedules completion.
func (s *Session) VerifyOrder() (activity.VerifyResult, error) {
	var res activity.VerifyResult
	err := s.chronology(func(c *activity.Chronology) {
		wasSolved := c.Solved()
		res = c.Verify()
		if res.Outcome == activity.OutcomeCorrect && !wasSolved {
			s.scheduleCompletionLocked()
		}
	})
	return res, err
}

func (s *Session) chronology(fn func(c *activity.Chronology)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(KindChronology); err != nil {
		return err
	}
	fn(s.chron)
	s.publishLocked()
	return nil
}

// SelectAnswer records a tentative quiz choice.
func (s *Session) SelectAnswer(option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(KindQuiz); err != nil {
		return err
	}
	if err := s.quiz.Select(option); err != nil {
		return err
	}
	s.publishLocked()
	return nil
}

// SubmitAnswer grades and locks the current quiz answer.
func (s *Session) SubmitAnswer() (*activity.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(KindQuiz); err != nil {
		return nil, err
	}
	fb, err := s.quiz.Submit()
	if err != nil {
		return nil, err
	}
	s.publishLocked()
	return fb, nil
}

// NextQuestion moves past an answered quiz question. Leaving the last one
// schedules completion.
func (s *Session) NextQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(KindQuiz); err != nil {
		return err
	}
	finished, err := s.quiz.Next()
	if err != nil {
		return err
	}
	if finished {
		s.log.Debug("quiz finished", "session_id", s.id, "correct", s.quiz.CorrectCount(), "total", s.quiz.Len())
		s.scheduleCompletionLocked()
	}
	s.publishLocked()
	return nil
}

// PickConcept answers the current fastest finger question.
func (s *Session) PickConcept(conceptID int) (*activity.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(KindFastestFinger); err != nil {
		return nil, err
	}
	fb, err := s.ff.Pick(conceptID)
	if err != nil {
		return nil, err
	}
	s.publishLocked()
	return fb, nil
}

// NextConcept moves past an answered fastest finger question. Leaving the
// last one schedules completion.
func (s *Session) NextConcept() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(KindFastestFinger); err != nil {
		return err
	}
	finished, err := s.ff.Next()
	if err != nil {
		return err
	}
	if finished {
		s.scheduleCompletionLocked()
	}
	s.publishLocked()
	return nil
}

// Subscribe returns a channel that receives the latest State after every
// change. Slow readers only see the most recent snapshot. cancel closes
// the channel.
func (s *Session) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan State, 1)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Session) requireLocked(k Kind) error {
	if s.ctrl == nil {
		return ErrNoSession
	}
	if s.ctrl.Current().Kind != k {
		return ErrWrongStage
	}
	return nil
}

// enterStageLocked builds fresh activity state for the current stage.
func (s *Session) enterStageLocked() {
	s.chron, s.quiz, s.ff = nil, nil, nil
	plan := s.ctrl.Plan()
	switch s.ctrl.Current().Kind {
	case KindChronology:
		s.chron = activity.NewChronology(plan.Chronology.Items, s.opts.Shuffler)
	case KindQuiz:
		s.quiz = activity.NewQuiz(plan.Quiz.Questions)
	case KindFastestFinger:
		s.ff = activity.NewFastestFinger(plan.FastestFinger.Concepts, s.opts.Shuffler)
	}
	s.log.Debug("stage entered", "session_id", s.id, "stage", s.ctrl.Current().Kind.String(), "index", s.ctrl.Index())
}

func (s *Session) activityDoneLocked() bool {
	switch s.ctrl.Current().Kind {
	case KindChronology:
		return s.chron.Solved()
	case KindQuiz:
		return s.quiz.Finished()
	case KindFastestFinger:
		return s.ff.Finished()
	}
	return false
}

func (s *Session) scheduleCompletionLocked() {
	if s.pending != nil {
		return
	}
	epoch := s.epoch
	s.pending = s.opts.Scheduler.AfterFunc(s.opts.CompletionDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if epoch != s.epoch || s.ctrl == nil {
			s.log.Debug("stale completion discarded", "epoch", epoch)
			return
		}
		s.completeLocked()
	})
}

func (s *Session) completeLocked() {
	stage := s.ctrl.Current().Kind
	s.cancelPendingLocked()
	if err := s.ctrl.CompleteActivity(); err != nil {
		s.log.Error("completion rejected", "session_id", s.id, "stage", stage.String(), "error", err)
		return
	}
	s.log.Info("activity completed", "session_id", s.id, "stage", stage.String(), "score", s.ctrl.Score(), "title", s.ctrl.Title())
	s.enterStageLocked()
	s.publishLocked()
}

func (s *Session) cancelPendingLocked() {
	s.epoch++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *Session) stateLocked() State {
	if s.ctrl == nil {
		return State{}
	}
	plan := s.ctrl.Plan()
	cur := s.ctrl.Current()
	theme := plan.Theme
	st := State{
		SessionID:         s.id,
		Active:            true,
		Stage:             cur.Kind.String(),
		StageIndex:        s.ctrl.Index(),
		StageCount:        s.ctrl.Len(),
		Score:             s.ctrl.Score(),
		Title:             s.ctrl.Title(),
		ShowHeader:        s.ctrl.ShowHeader(),
		CompletionPending: s.pending != nil,
		Topic:             plan.Topic,
		Theme:             &theme,
		Slide:             cur.Slide,
	}
	switch {
	case s.chron != nil:
		st.Chronology = chronologyState(s.chron)
	case s.quiz != nil:
		st.Quiz = quizState(s.quiz)
	case s.ff != nil:
		st.FastestFinger = fastestFingerState(s.ff)
	}
	return st
}

func (s *Session) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	st := s.stateLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}
