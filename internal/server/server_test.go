package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessonarcade/internal/lessongen"
	"github.com/abhisek/lessonarcade/internal/lessonplan"
	"github.com/abhisek/lessonarcade/internal/llm"
	"github.com/abhisek/lessonarcade/internal/session"
)

// heldScheduler never fires, so completions only happen through
// POST /api/session/complete.
type heldScheduler struct{}

type heldTimer struct{}

func (heldTimer) Stop() bool { return true }

func (heldScheduler) AfterFunc(time.Duration, func()) session.Timer { return heldTimer{} }

func newTestServer(t *testing.T) (*Server, *session.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sess := session.New(session.Options{Scheduler: heldScheduler{}})
	gen := lessongen.NewGenerator(llm.NewSampleProvider(), lessongen.DefaultConfig(), nil)
	return New(Config{AllowedOrigins: []string{"http://localhost:3000"}}, sess, gen, nil), sess
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case []byte:
		buf.Write(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorEnvelope](t, w).Error.Code
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestGetState_Idle(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[session.State](t, w)
	assert.False(t, st.Active)
}

func TestStartSession_FromPlan(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodPost, "/api/session", lessonplan.SampleJSON())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	st := decode[session.State](t, w)
	assert.True(t, st.Active)
	assert.NotEmpty(t, st.SessionID)
	assert.Equal(t, "welcome", st.Stage)
	assert.False(t, st.ShowHeader)
	assert.Equal(t, "Mission Points", st.Theme.PointName)
}

func TestStartSession_AcceptsLooserPlan(t *testing.T) {
	s, _ := newTestServer(t)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(lessonplan.SampleJSON(), &doc))
	slides := doc["infoSlides"].([]any)
	doc["infoSlides"] = append(slides, slides[0])
	doc["extraNote"] = "bring a star map"
	titles := doc["theme"].(map[string]any)["titles"].([]any)
	titles[1].(map[string]any)["threshold"] = 1500.5
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	w := do(t, s, http.MethodPost, "/api/session", raw)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "welcome", decode[session.State](t, w).Stage)
}

func TestStartSession_RejectsInvalidPlan(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/session", []byte(`{"topic":"Moon"}`))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_plan", errorCode(t, w))

	w = do(t, s, http.MethodPost, "/api/session", []byte(`not json`))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGenerateLesson(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/lessons", lessongen.Request{
		Topic:      "The Race to the Moon",
		Content:    "Apollo 11 landed in 1969.",
		GradeLevel: "6",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	st := decode[session.State](t, w)
	assert.Equal(t, "The Race to the Moon", st.Topic)
}

func TestGenerateLesson_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/lessons", lessongen.Request{Topic: "Moon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode[ErrorEnvelope](t, w)
	assert.Equal(t, "invalid_input", env.Error.Code)
	assert.Equal(t, "All fields must be filled out.", env.Error.Message)

	failing := lessongen.NewGenerator(llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}), lessongen.DefaultConfig(), nil)
	s = New(Config{}, session.New(session.Options{}), failing, nil)
	w = do(t, s, http.MethodPost, "/api/lessons", lessongen.Request{Topic: "a", Content: "b", GradeLevel: "c"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	env = decode[ErrorEnvelope](t, w)
	assert.Equal(t, "generation_failed", env.Error.Code)
	assert.Equal(t, lessongen.FailureMessage, env.Error.Message)

	s = New(Config{}, session.New(session.Options{}), nil, nil)
	w = do(t, s, http.MethodPost, "/api/lessons", lessongen.Request{Topic: "a", Content: "b", GradeLevel: "c"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestActions_WithoutSession(t *testing.T) {
	s, _ := newTestServer(t)
	for _, path := range []string{
		"/api/session/advance",
		"/api/session/complete",
		"/api/session/chronology/verify",
		"/api/session/quiz/submit",
		"/api/session/fastest-finger/next",
	} {
		w := do(t, s, http.MethodPost, path, nil)
		assert.Equal(t, http.StatusConflict, w.Code, path)
		assert.Equal(t, "no_session", errorCode(t, w), path)
	}
}

func TestActions_WrongStageAndBadBodies(t *testing.T) {
	s, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/session", lessonplan.SampleJSON()).Code)

	w := do(t, s, http.MethodPost, "/api/session/quiz/select", map[string]string{"option": "Eagle"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "wrong_stage", errorCode(t, w))

	w = do(t, s, http.MethodPost, "/api/session/chronology/place", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", errorCode(t, w))
}

func TestFullRunOverHTTP(t *testing.T) {
	s, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/session", lessonplan.SampleJSON()).Code)

	advance := func(want string) {
		t.Helper()
		w := do(t, s, http.MethodPost, "/api/session/advance", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, want, decode[session.State](t, w).Stage)
	}
	complete := func(want string) session.State {
		t.Helper()
		w := do(t, s, http.MethodPost, "/api/session/complete", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		st := decode[session.State](t, w)
		require.Equal(t, want, st.Stage)
		return st
	}

	advance("info_slide")
	advance("chronology")

	// Completing before the timeline is solved is refused.
	w := do(t, s, http.MethodPost, "/api/session/complete", nil)
	assert.Equal(t, "activity_pending", errorCode(t, w))

	for id := 1; id <= 5; id++ {
		w := do(t, s, http.MethodPost, "/api/session/chronology/place", map[string]int{"id": id})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w = do(t, s, http.MethodPost, "/api/session/chronology/verify", nil)
	require.Equal(t, http.StatusOK, w.Code)
	vr := decode[verifyResponse](t, w)
	assert.Equal(t, "correct", string(vr.Result.Outcome))
	assert.True(t, vr.State.CompletionPending)

	st := complete("info_slide")
	assert.Equal(t, 1000, st.Score)
	assert.Equal(t, "Flight Controller", st.Title)

	advance("quiz")
	for {
		st := decode[session.State](t, do(t, s, http.MethodGet, "/api/session", nil))
		if st.Quiz.Finished {
			break
		}
		w := do(t, s, http.MethodPost, "/api/session/quiz/select", map[string]string{"option": st.Quiz.Question.CorrectAnswer})
		require.Equal(t, http.StatusOK, w.Code)
		w = do(t, s, http.MethodPost, "/api/session/quiz/submit", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[feedbackResponse](t, w).Feedback.Correct)
		require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/session/quiz/next", nil).Code)
	}
	complete("fastest_finger")

	for {
		st := decode[session.State](t, do(t, s, http.MethodGet, "/api/session", nil))
		require.True(t, st.FastestFinger.Playable)
		if st.FastestFinger.Finished {
			break
		}
		w := do(t, s, http.MethodPost, "/api/session/fastest-finger/pick", map[string]int{"conceptId": st.FastestFinger.Question.CorrectConceptID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/session/fastest-finger/next", nil).Code)
	}
	st = complete("results")
	assert.Equal(t, 3000, st.Score)
	assert.Equal(t, "Astronaut", st.Title)
	assert.False(t, st.ShowHeader)

	w = do(t, s, http.MethodDelete, "/api/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[session.State](t, w).Active)
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/session", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "POST"))
}
