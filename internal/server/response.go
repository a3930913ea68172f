package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lessonarcade/internal/activity"
	"github.com/abhisek/lessonarcade/internal/lessongen"
	"github.com/abhisek/lessonarcade/internal/lessonplan"
	"github.com/abhisek/lessonarcade/internal/session"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondFailure maps domain errors onto status codes. Anything unknown is
// a 500 whose detail stays in the log.
func respondFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lessongen.ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, lessongen.ErrGenerationFailed):
		RespondError(c, http.StatusBadGateway, "generation_failed", err)
	case errors.Is(err, lessonplan.ErrInvalidPlan):
		RespondError(c, http.StatusUnprocessableEntity, "invalid_plan", err)
	case errors.Is(err, session.ErrNoSession):
		RespondError(c, http.StatusConflict, "no_session", err)
	case errors.Is(err, session.ErrWrongStage):
		RespondError(c, http.StatusConflict, "wrong_stage", err)
	case errors.Is(err, session.ErrActivityPending):
		RespondError(c, http.StatusConflict, "activity_pending", err)
	case errors.Is(err, activity.ErrUnknownOption):
		RespondError(c, http.StatusBadRequest, "unknown_option", err)
	case errors.Is(err, activity.ErrNoSelection),
		errors.Is(err, activity.ErrAnswerLocked),
		errors.Is(err, activity.ErrNoFeedback),
		errors.Is(err, activity.ErrFinished):
		RespondError(c, http.StatusConflict, "invalid_action", err)
	default:
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
	}
}
