package mathproblem

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/kyleowen12345/math-problem-generator/internal/config"
	mathdomain "github.com/kyleowen12345/math-problem-generator/internal/domain/mathproblem"
	"github.com/kyleowen12345/math-problem-generator/internal/gemini"
	"github.com/kyleowen12345/math-problem-generator/internal/httperror"
	"github.com/kyleowen12345/math-problem-generator/internal/store"
)

// answerTolerance bounds the allowed distance between a submitted answer and
// the stored integer answer.
const answerTolerance = 0.01

const (
	generateFailedMessage = "Failed to generate problem. Please try again."
	submitFailedMessage   = "Failed to process submission. Please try again."
)

// SessionStore is the persistence surface the service needs.
type SessionStore interface {
	CreateSession(ctx context.Context, problemText string, correctAnswer int, difficulty string) (*store.ProblemSession, error)
	GetSession(ctx context.Context, sessionID string) (*store.ProblemSession, error)
	CreateSubmission(ctx context.Context, sub *store.Submission) error
}

// Service implements problem generation and answer grading.
type Service struct {
	cfg     *config.Config
	client  gemini.LLM
	store   SessionStore
	prompts *mathdomain.Prompts
	logger  *slog.Logger
}

// New creates a Service instance.
func New(
	cfg *config.Config,
	client gemini.LLM,
	sessionStore SessionStore,
	prompts *mathdomain.Prompts,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:     cfg,
		client:  client,
		store:   sessionStore,
		prompts: prompts,
		logger:  logger,
	}
}

// GenerateResult is the outcome of a problem generation.
type GenerateResult struct {
	SessionID   string
	ProblemText string
	FinalAnswer int
	Difficulty  mathdomain.Difficulty
}

// GradeResult is the outcome of grading one submission.
type GradeResult struct {
	IsCorrect     bool
	Feedback      string
	CorrectAnswer int
	StreakMessage string
}

// Generate builds a prompt for the requested tier, calls the model once,
// parses its output, and persists a new problem session. No retries: a
// malformed response fails the request.
func (s *Service) Generate(ctx context.Context, requestID string, difficulty string) (*GenerateResult, error) {
	tier := mathdomain.ParseDifficulty(difficulty)
	profile := mathdomain.ProfileFor(tier)

	system, err := s.prompts.GenerateSystem()
	if err != nil {
		s.logError("problem_system_prompt_failed", err)
		return nil, httperror.NewInternalError(generateFailedMessage)
	}
	user, err := s.prompts.GenerateUser(profile)
	if err != nil {
		s.logError("problem_user_prompt_failed", err)
		return nil, httperror.NewInternalError(generateFailedMessage)
	}

	raw, model, err := s.client.Chat(ctx, gemini.Request{
		Prompt:       user,
		SystemPrompt: system,
	})
	if err != nil {
		s.logError("problem_llm_failed", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, httperror.NewLLMTimeoutError()
		}
		return nil, httperror.NewLLMError(generateFailedMessage, http.StatusInternalServerError)
	}

	parsed, err := mathdomain.ParseProblemResponse(raw)
	if err != nil {
		s.logError("problem_parse_failed", err)
		return nil, httperror.NewLLMParsingError()
	}

	session, err := s.store.CreateSession(ctx, parsed.Text, parsed.Answer, string(tier))
	if err != nil {
		s.logError("session_create_failed", err)
		return nil, httperror.NewStoreError(generateFailedMessage)
	}

	s.logInfo(
		"problem_generated",
		"request_id", requestID,
		"session_id", session.ID,
		"difficulty", tier,
		"model", model,
	)

	return &GenerateResult{
		SessionID:   session.ID,
		ProblemText: session.ProblemText,
		FinalAnswer: session.CorrectAnswer,
		Difficulty:  tier,
	}, nil
}

// Grade fetches the stored session, compares the submitted answer under the
// tolerance rule, asks the model for feedback, and persists the submission.
// Correctness is always computed server-side. A feedback failure fails the
// whole request.
func (s *Service) Grade(ctx context.Context, requestID string, sessionID string, userAnswer float64, streak int) (*GradeResult, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			s.logInfo("session_not_found", "request_id", requestID, "session_id", sessionID)
			return nil, httperror.NewSessionNotFound()
		}
		s.logError("session_fetch_failed", err)
		return nil, httperror.NewSessionNotFound()
	}

	isCorrect := math.Abs(userAnswer-float64(session.CorrectAnswer)) < answerTolerance

	system, err := s.prompts.FeedbackSystem()
	if err != nil {
		s.logError("feedback_system_prompt_failed", err)
		return nil, httperror.NewInternalError(submitFailedMessage)
	}
	user, err := s.prompts.FeedbackUser(session.ProblemText, userAnswer, session.CorrectAnswer, isCorrect)
	if err != nil {
		s.logError("feedback_user_prompt_failed", err)
		return nil, httperror.NewInternalError(submitFailedMessage)
	}

	feedback, model, err := s.client.Chat(ctx, gemini.Request{
		Prompt:       user,
		SystemPrompt: system,
	})
	if err != nil {
		s.logError("feedback_llm_failed", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, httperror.NewLLMTimeoutError()
		}
		return nil, httperror.NewLLMError(submitFailedMessage, http.StatusInternalServerError)
	}

	submission := &store.Submission{
		SessionID:    session.ID,
		UserAnswer:   userAnswer,
		IsCorrect:    isCorrect,
		FeedbackText: feedback,
	}
	if err := s.store.CreateSubmission(ctx, submission); err != nil {
		s.logError("submission_create_failed", err)
		return nil, httperror.NewStoreError(submitFailedMessage)
	}

	streakMessage := ""
	if isCorrect {
		streakMessage = mathdomain.StreakMessage(streak + 1)
	}

	s.logInfo(
		"submission_graded",
		"request_id", requestID,
		"session_id", session.ID,
		"is_correct", isCorrect,
		"model", model,
	)

	return &GradeResult{
		IsCorrect:     isCorrect,
		Feedback:      feedback,
		CorrectAnswer: session.CorrectAnswer,
		StreakMessage: streakMessage,
	}, nil
}

func (s *Service) logError(event string, err error) {
	if s == nil || s.logger == nil || err == nil {
		return
	}
	s.logger.Warn(event, "err", err)
}

func (s *Service) logInfo(event string, fields ...any) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Info(event, fields...)
}
