package session

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/lessonarcade/internal/activity"
	"github.com/abhisek/lessonarcade/internal/lessonplan"
)

// manualScheduler records scheduled calls and runs them only when fired.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{delay: d, f: f}
	m.timers = append(m.timers, t)
	return t
}

// fireAll runs every scheduled call, including stopped ones, the way a
// timer that raced its Stop would.
func (m *manualScheduler) fireAll() {
	m.mu.Lock()
	timers := m.timers
	m.timers = nil
	m.mu.Unlock()
	for _, t := range timers {
		t.fired = true
		t.f()
	}
}

func (m *manualScheduler) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

type identityShuffler struct{}

func (identityShuffler) Shuffle(int, func(i, j int)) {}

func newTestSession(t *testing.T) (*Session, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	s := New(Options{Scheduler: sched, Shuffler: identityShuffler{}})
	return s, sched
}

func samplePlan(t *testing.T) *lessonplan.LessonPlan {
	t.Helper()
	return lessonplan.Sample()
}

func mustAdvance(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
}

func solveChronology(t *testing.T, s *Session, plan *lessonplan.LessonPlan) {
	t.Helper()
	for _, it := range plan.Chronology.Items {
		if err := s.PlaceItem(it.ID); err != nil {
			t.Fatal(err)
		}
	}
	res, err := s.VerifyOrder()
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != activity.OutcomeCorrect {
		t.Fatalf("verify: %+v", res)
	}
}

func finishQuiz(t *testing.T, s *Session, plan *lessonplan.LessonPlan) {
	t.Helper()
	for _, q := range plan.Quiz.Questions {
		if err := s.SelectAnswer(q.CorrectAnswer); err != nil {
			t.Fatal(err)
		}
		if _, err := s.SubmitAnswer(); err != nil {
			t.Fatal(err)
		}
		if err := s.NextQuestion(); err != nil {
			t.Fatal(err)
		}
	}
}

func finishFastestFinger(t *testing.T, s *Session) {
	t.Helper()
	for {
		st := s.State().FastestFinger
		if st == nil || st.Finished {
			return
		}
		if _, err := s.PickConcept(st.Question.CorrectConceptID); err != nil {
			t.Fatal(err)
		}
		if err := s.NextConcept(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBuildFlow_Order(t *testing.T) {
	plan := samplePlan(t)
	stages := BuildFlow(plan)
	want := []Kind{KindWelcome, KindInfoSlide, KindChronology, KindInfoSlide, KindQuiz, KindFastestFinger, KindResults}
	if len(stages) != len(want) {
		t.Fatalf("got %d stages", len(stages))
	}
	for i, st := range stages {
		if st.Kind != want[i] {
			t.Errorf("stage %d = %s, want %s", i, st.Kind, want[i])
		}
	}
	if stages[1].Slide != &plan.InfoSlides[0] || stages[3].Slide != &plan.InfoSlides[1] {
		t.Error("info slides not injected in order")
	}
}

func TestController_AdvanceIdempotentAtEnd(t *testing.T) {
	c := NewController(samplePlan(t), 0)
	for c.Advance() {
	}
	if c.Current().Kind != KindResults {
		t.Fatalf("ended at %s", c.Current().Kind)
	}
	for range 5 {
		if c.Advance() {
			t.Error("Advance at terminal stage should be a no-op")
		}
	}
	if c.Index() != c.Len()-1 {
		t.Errorf("index = %d", c.Index())
	}
}

func TestController_ShowHeader(t *testing.T) {
	c := NewController(samplePlan(t), 0)
	for {
		k := c.Current().Kind
		want := k != KindWelcome && k != KindResults
		if c.ShowHeader() != want {
			t.Errorf("%s: ShowHeader = %v", k, c.ShowHeader())
		}
		if !c.Advance() {
			break
		}
	}
}

func TestController_CompleteActivity(t *testing.T) {
	c := NewController(samplePlan(t), 0)
	if err := c.CompleteActivity(); !errors.Is(err, ErrWrongStage) {
		t.Errorf("welcome: expected ErrWrongStage, got %v", err)
	}
	c.Advance()
	c.Advance()
	if err := c.CompleteActivity(); err != nil {
		t.Fatal(err)
	}
	if c.Score() != 1000 || c.Current().Kind != KindInfoSlide {
		t.Errorf("score %d at %s", c.Score(), c.Current().Kind)
	}
	if c.Title() != "Flight Controller" {
		t.Errorf("title = %q", c.Title())
	}
}

func TestSession_ActionsWithoutSession(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.Advance(); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
	if err := s.PlaceItem(1); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
	if st := s.State(); st.Active {
		t.Error("idle session should not be active")
	}
	if _, err := s.Start(nil); !errors.Is(err, ErrNilPlan) {
		t.Errorf("expected ErrNilPlan, got %v", err)
	}
}

func TestSession_WrongStage(t *testing.T) {
	s, _ := newTestSession(t)
	s.Start(samplePlan(t))
	if err := s.SelectAnswer("x"); !errors.Is(err, ErrWrongStage) {
		t.Errorf("expected ErrWrongStage, got %v", err)
	}
	if err := s.CompleteCurrentActivity(); !errors.Is(err, ErrWrongStage) {
		t.Errorf("expected ErrWrongStage, got %v", err)
	}
	mustAdvance(t, s)
	mustAdvance(t, s)
	if err := s.Advance(); !errors.Is(err, ErrWrongStage) {
		t.Errorf("scored stage must not advance without completion, got %v", err)
	}
	if err := s.CompleteCurrentActivity(); !errors.Is(err, ErrActivityPending) {
		t.Errorf("expected ErrActivityPending, got %v", err)
	}
}

func TestSession_ChronologyCompletesAfterDelay(t *testing.T) {
	s, sched := newTestSession(t)
	plan := samplePlan(t)
	s.Start(plan)
	mustAdvance(t, s)
	mustAdvance(t, s)

	st := s.State()
	if st.Stage != "chronology" || len(st.Chronology.Pool) != 5 || len(st.Chronology.Target) != 0 {
		t.Fatalf("unexpected chronology state: %+v", st.Chronology)
	}

	solveChronology(t, s, plan)

	st = s.State()
	if st.Chronology.Message != activity.MsgOrderRight || !st.CompletionPending {
		t.Errorf("state before delay: %+v pending=%v", st.Chronology, st.CompletionPending)
	}
	if len(st.Chronology.Pool) != 0 || !slices.Equal(st.Chronology.Target, plan.Chronology.Items) {
		t.Error("expected empty pool and canonical timeline")
	}
	if st.Stage != "chronology" {
		t.Error("flow must not advance before the delay")
	}
	if sched.count() != 1 || sched.timers[0].delay != DefaultCompletionDelay {
		t.Fatalf("expected one completion scheduled after %s", DefaultCompletionDelay)
	}

	sched.fireAll()

	st = s.State()
	if st.Stage != "info_slide" || st.StageIndex != 3 || st.Score != 1000 {
		t.Errorf("after delay: stage %s index %d score %d", st.Stage, st.StageIndex, st.Score)
	}
	if st.CompletionPending {
		t.Error("completion should no longer be pending")
	}
}

func TestSession_VerifyTwiceSchedulesOnce(t *testing.T) {
	s, sched := newTestSession(t)
	plan := samplePlan(t)
	s.Start(plan)
	mustAdvance(t, s)
	mustAdvance(t, s)
	solveChronology(t, s, plan)
	s.VerifyOrder()
	if sched.count() != 1 {
		t.Errorf("scheduled %d completions", sched.count())
	}
}

func TestSession_ResetDiscardsPendingCompletion(t *testing.T) {
	s, sched := newTestSession(t)
	plan := samplePlan(t)
	s.Start(plan)
	mustAdvance(t, s)
	mustAdvance(t, s)
	solveChronology(t, s, plan)

	s.Reset()
	if !sched.timers[0].stopped {
		t.Error("reset should stop the pending timer")
	}
	sched.fireAll()
	if st := s.State(); st.Active {
		t.Errorf("stale completion revived the session: %+v", st)
	}

	s.Start(plan)
	mustAdvance(t, s)
	mustAdvance(t, s)
	solveChronology(t, s, plan)
	s.Reset()
	s.Start(plan)
	sched.fireAll()
	if st := s.State(); st.StageIndex != 0 || st.Score != 0 {
		t.Errorf("stale completion leaked into the new session: %+v", st)
	}
}

func TestSession_CompleteCurrentActivitySkipsDelay(t *testing.T) {
	s, sched := newTestSession(t)
	plan := samplePlan(t)
	s.Start(plan)
	mustAdvance(t, s)
	mustAdvance(t, s)
	solveChronology(t, s, plan)

	if err := s.CompleteCurrentActivity(); err != nil {
		t.Fatal(err)
	}
	sched.fireAll()
	st := s.State()
	if st.Score != 1000 || st.StageIndex != 3 {
		t.Errorf("completion applied twice or not at all: score %d index %d", st.Score, st.StageIndex)
	}
}

func TestSession_FullRunRewardInvariant(t *testing.T) {
	s, sched := newTestSession(t)
	plan := samplePlan(t)
	s.Start(plan)

	mustAdvance(t, s)
	mustAdvance(t, s)
	solveChronology(t, s, plan)
	sched.fireAll()

	mustAdvance(t, s)
	if got := s.State(); got.Stage != "quiz" || got.Score != 1000 {
		t.Fatalf("expected quiz with 1000, got %s %d", got.Stage, got.Score)
	}
	finishQuiz(t, s, plan)
	sched.fireAll()

	if got := s.State(); got.Stage != "fastest_finger" || got.Score != 2000 {
		t.Fatalf("expected fastest finger with 2000, got %s %d", got.Stage, got.Score)
	}
	finishFastestFinger(t, s)
	sched.fireAll()

	st := s.State()
	if st.Stage != "results" || st.Score != 3000 {
		t.Fatalf("expected results with 3000, got %s %d", st.Stage, st.Score)
	}
	if st.Title != "Astronaut" {
		t.Errorf("title = %q", st.Title)
	}
	if st.ShowHeader {
		t.Error("results stage hides the header")
	}
	if err := s.Advance(); err != nil {
		t.Errorf("advance at results: %v", err)
	}
	if s.State().StageIndex != st.StageIndex {
		t.Error("advance at results moved the flow")
	}
}

func TestSession_WrongQuizAnswersStillEarnFullReward(t *testing.T) {
	s, sched := newTestSession(t)
	plan := samplePlan(t)
	s.Start(plan)
	mustAdvance(t, s)
	mustAdvance(t, s)
	solveChronology(t, s, plan)
	sched.fireAll()
	mustAdvance(t, s)

	for _, q := range plan.Quiz.Questions {
		wrong := q.Options[0]
		if wrong == q.CorrectAnswer {
			wrong = q.Options[1]
		}
		s.SelectAnswer(wrong)
		s.SubmitAnswer()
		s.NextQuestion()
	}
	sched.fireAll()
	if st := s.State(); st.Score != 2000 {
		t.Errorf("score = %d, want 2000", st.Score)
	}
}

func TestSession_UnplayableFastestFingerIsSkipped(t *testing.T) {
	s, sched := newTestSession(t)
	plan := samplePlan(t)
	plan.FastestFinger.Concepts = plan.FastestFinger.Concepts[:2]
	s.Start(plan)
	mustAdvance(t, s)
	mustAdvance(t, s)
	solveChronology(t, s, plan)
	sched.fireAll()
	mustAdvance(t, s)
	finishQuiz(t, s, plan)
	sched.fireAll()

	st := s.State()
	if st.Stage != "fastest_finger" || st.FastestFinger.Playable || st.FastestFinger.Message != MsgNotEnoughConcepts {
		t.Fatalf("unexpected state: %+v", st.FastestFinger)
	}
	if st.FastestFinger.Total != 0 {
		t.Errorf("expected no questions, got %d", st.FastestFinger.Total)
	}
	mustAdvance(t, s)

	st = s.State()
	if st.Stage != "results" || st.Score != 2000 {
		t.Errorf("expected results with 2000, got %s %d", st.Stage, st.Score)
	}
}

func TestSession_Subscribe(t *testing.T) {
	s, _ := newTestSession(t)
	updates, cancel := s.Subscribe()

	s.Start(samplePlan(t))
	mustAdvance(t, s)

	st := <-updates
	if st.StageIndex != 1 {
		t.Errorf("subscriber should see the latest state, got index %d", st.StageIndex)
	}

	cancel()
	cancel()
	if _, ok := <-updates; ok {
		t.Error("channel should be closed after cancel")
	}
	mustAdvance(t, s)
}
