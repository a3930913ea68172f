package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lessonarcade/internal/activity"
	"github.com/abhisek/lessonarcade/internal/lessongen"
	"github.com/abhisek/lessonarcade/internal/lessonplan"
	"github.com/abhisek/lessonarcade/internal/llm"
	"github.com/abhisek/lessonarcade/internal/session"
)

const maxPlanBytes = 1 << 20

type itemRequest struct {
	ID *int `json:"id" binding:"required"`
}

type answerRequest struct {
	Option string `json:"option" binding:"required"`
}

type pickRequest struct {
	ConceptID *int `json:"conceptId" binding:"required"`
}

type verifyResponse struct {
	Result activity.VerifyResult `json:"result"`
	State  session.State         `json:"state"`
}

type feedbackResponse struct {
	Feedback *activity.Feedback `json:"feedback"`
	State    session.State      `json:"state"`
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) getState(c *gin.Context) {
	RespondOK(c, s.session.State())
}

// generateLesson blocks on the model, then starts a session with the result.
func (s *Server) generateLesson(c *gin.Context) {
	if s.generator == nil {
		RespondError(c, http.StatusServiceUnavailable, "generation_disabled", errors.New("lesson generation is not configured"))
		return
	}
	var req lessongen.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	plan, err := s.generator.Generate(c.Request.Context(), req)
	if err != nil {
		respondFailure(c, err)
		return
	}
	s.start(c, plan)
}

// startSession starts a session from a posted lesson plan document.
func (s *Server) startSession(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPlanBytes))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := llm.ValidateJSON(lessongen.PostedPlanSchema, raw); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid_plan", err)
		return
	}
	plan, err := lessonplan.Ingest(raw)
	if err != nil {
		respondFailure(c, err)
		return
	}
	s.start(c, plan)
}

func (s *Server) start(c *gin.Context, plan *lessonplan.LessonPlan) {
	if _, err := s.session.Start(plan); err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.session.State())
}

func (s *Server) resetSession(c *gin.Context) {
	s.session.Reset()
	RespondOK(c, s.session.State())
}

func (s *Server) advance(c *gin.Context) {
	s.act(c, s.session.Advance)
}

func (s *Server) complete(c *gin.Context) {
	s.act(c, s.session.CompleteCurrentActivity)
}

func (s *Server) placeItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	s.act(c, func() error { return s.session.PlaceItem(*req.ID) })
}

func (s *Server) unplaceItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	s.act(c, func() error { return s.session.UnplaceItem(*req.ID) })
}

func (s *Server) resetOrder(c *gin.Context) {
	s.act(c, s.session.ResetOrder)
}

func (s *Server) verifyOrder(c *gin.Context) {
	res, err := s.session.VerifyOrder()
	if err != nil {
		respondFailure(c, err)
		return
	}
	RespondOK(c, verifyResponse{Result: res, State: s.session.State()})
}

func (s *Server) selectAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	s.act(c, func() error { return s.session.SelectAnswer(req.Option) })
}

func (s *Server) submitAnswer(c *gin.Context) {
	fb, err := s.session.SubmitAnswer()
	if err != nil {
		respondFailure(c, err)
		return
	}
	RespondOK(c, feedbackResponse{Feedback: fb, State: s.session.State()})
}

func (s *Server) nextQuestion(c *gin.Context) {
	s.act(c, s.session.NextQuestion)
}

func (s *Server) pickConcept(c *gin.Context) {
	var req pickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	fb, err := s.session.PickConcept(*req.ConceptID)
	if err != nil {
		respondFailure(c, err)
		return
	}
	RespondOK(c, feedbackResponse{Feedback: fb, State: s.session.State()})
}

func (s *Server) nextConcept(c *gin.Context) {
	s.act(c, s.session.NextConcept)
}

// act runs a state-changing action and answers with the new state.
func (s *Server) act(c *gin.Context, fn func() error) {
	if err := fn(); err != nil {
		respondFailure(c, err)
		return
	}
	RespondOK(c, s.session.State())
}
