package handler

import (
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kyleowen12345/math-problem-generator/internal/config"
	mathdomain "github.com/kyleowen12345/math-problem-generator/internal/domain/mathproblem"
	"github.com/kyleowen12345/math-problem-generator/internal/gemini"
	"github.com/kyleowen12345/math-problem-generator/internal/handler/shared"
	"github.com/kyleowen12345/math-problem-generator/internal/httperror"
	"github.com/kyleowen12345/math-problem-generator/internal/middleware"
	mathuc "github.com/kyleowen12345/math-problem-generator/internal/usecase/mathproblem"
)

// GenerateProblemRequest is the problem generation request body.
type GenerateProblemRequest struct {
	Difficulty string `json:"difficulty"`
}

// GenerateProblemResponse is the problem generation response body.
type GenerateProblemResponse struct {
	ProblemText string `json:"problem_text"`
	FinalAnswer int    `json:"final_answer"`
	SessionID   string `json:"session_id"`
	Difficulty  string `json:"difficulty"`
}

// SubmitAnswerRequest is the answer submission request body.
// UserAnswer is a pointer so a missing field is distinguishable from zero.
type SubmitAnswerRequest struct {
	SessionID  string   `json:"session_id"`
	UserAnswer *float64 `json:"user_answer"`
	Streak     *int     `json:"streak"`
}

// SubmitAnswerResponse is the answer submission response body.
type SubmitAnswerResponse struct {
	IsCorrect     bool   `json:"is_correct"`
	Feedback      string `json:"feedback"`
	CorrectAnswer int    `json:"correct_answer"`
	StreakMessage string `json:"streak_message,omitempty"`
}

// MathProblemHandler serves problem generation and grading.
type MathProblemHandler struct {
	usecase *mathuc.Service
	logger  *slog.Logger
}

// NewMathProblemHandler creates the math problem handler.
func NewMathProblemHandler(
	cfg *config.Config,
	client gemini.LLM,
	sessionStore mathuc.SessionStore,
	prompts *mathdomain.Prompts,
	logger *slog.Logger,
) *MathProblemHandler {
	return &MathProblemHandler{
		usecase: mathuc.New(cfg, client, sessionStore, prompts, logger),
		logger:  logger,
	}
}

// RegisterRoutes registers the math problem routes.
func (h *MathProblemHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/math-problem")
	group.POST("", h.handleGenerate)
	group.POST("/submit", h.handleSubmit)
}

func (h *MathProblemHandler) handleGenerate(c *gin.Context) {
	var req GenerateProblemRequest
	if !bindJSONAllowEmpty(c, &req) {
		return
	}

	result, err := h.usecase.Generate(c.Request.Context(), middleware.GetRequestID(c), req.Difficulty)
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateProblemResponse{
		ProblemText: result.ProblemText,
		FinalAnswer: result.FinalAnswer,
		SessionID:   result.SessionID,
		Difficulty:  string(result.Difficulty),
	})
}

func (h *MathProblemHandler) handleSubmit(c *gin.Context) {
	var req SubmitAnswerRequest
	if !bindJSON(c, &req) {
		return
	}

	if strings.TrimSpace(req.SessionID) == "" {
		writeError(c, httperror.NewMissingField("session_id"))
		return
	}
	if req.UserAnswer == nil {
		writeError(c, httperror.NewMissingField("user_answer"))
		return
	}
	if math.IsNaN(*req.UserAnswer) || math.IsInf(*req.UserAnswer, 0) {
		writeError(c, httperror.NewInvalidInput("user_answer must be a finite number"))
		return
	}

	streak := 0
	if req.Streak != nil && *req.Streak > 0 {
		streak = *req.Streak
	}

	result, err := h.usecase.Grade(c.Request.Context(), middleware.GetRequestID(c), req.SessionID, *req.UserAnswer, streak)
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmitAnswerResponse{
		IsCorrect:     result.IsCorrect,
		Feedback:      result.Feedback,
		CorrectAnswer: result.CorrectAnswer,
		StreakMessage: result.StreakMessage,
	})
}

func (h *MathProblemHandler) logError(err error) {
	shared.LogError(h.logger, "mathproblem", err)
}
