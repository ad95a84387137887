package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/kyleowen12345/math-problem-generator/internal/config"
	mathdomain "github.com/kyleowen12345/math-problem-generator/internal/domain/mathproblem"
	"github.com/kyleowen12345/math-problem-generator/internal/gemini"
	"github.com/kyleowen12345/math-problem-generator/internal/middleware"
	"github.com/kyleowen12345/math-problem-generator/internal/store"
)

type fakeLLM struct {
	chatFn func(ctx context.Context, req gemini.Request) (string, string, error)
	calls  int
}

func (f *fakeLLM) Chat(ctx context.Context, req gemini.Request) (string, string, error) {
	f.calls++
	if f.chatFn == nil {
		return "", "gemini-test", nil
	}
	return f.chatFn(ctx, req)
}

func newTestRouter(t *testing.T, client gemini.LLM) (*gin.Engine, *store.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repo := store.New(db)
	if err := repo.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	prompts, err := mathdomain.NewPrompts()
	if err != nil {
		t.Fatalf("failed to load prompts: %v", err)
	}

	cfg := &config.Config{Gemini: config.GeminiConfig{Model: "gemini-test"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}))

	router := gin.New()
	router.Use(middleware.RequestID())
	NewMathProblemHandler(cfg, client, repo, prompts, logger).RegisterRoutes(router)
	return router, repo
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateProblemEndpoint(t *testing.T) {
	client := &fakeLLM{
		chatFn: func(_ context.Context, req gemini.Request) (string, string, error) {
			return "PROBLEM: Sam has 120 apples. He sells 33 apples at the market. How many apples does Sam have left?\nANSWER: 87", "gemini-test", nil
		},
	}
	router, repo := newTestRouter(t, client)

	w := postJSON(t, router, "/math-problem", `{"difficulty":"hard"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp GenerateProblemResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatalf("expected session id")
	}
	if resp.FinalAnswer != 87 {
		t.Fatalf("expected final answer 87, got %d", resp.FinalAnswer)
	}
	if resp.Difficulty != "hard" {
		t.Fatalf("expected difficulty hard, got %q", resp.Difficulty)
	}

	session, err := repo.GetSession(context.Background(), resp.SessionID)
	if err != nil {
		t.Fatalf("expected persisted session: %v", err)
	}
	if session.CorrectAnswer != 87 {
		t.Fatalf("expected stored answer 87, got %d", session.CorrectAnswer)
	}
}

func TestGenerateProblemEmptyBodyDefaultsEasy(t *testing.T) {
	client := &fakeLLM{
		chatFn: func(_ context.Context, req gemini.Request) (string, string, error) {
			return "PROBLEM: What is 3 + 4?\nANSWER: 7", "gemini-test", nil
		},
	}
	router, _ := newTestRouter(t, client)

	w := postJSON(t, router, "/math-problem", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp GenerateProblemResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Difficulty != "easy" {
		t.Fatalf("expected easy fallback, got %q", resp.Difficulty)
	}
}

func TestGenerateProblemMalformedModelOutput(t *testing.T) {
	client := &fakeLLM{
		chatFn: func(_ context.Context, req gemini.Request) (string, string, error) {
			return "Here is a fun problem for you!", "gemini-test", nil
		},
	}
	router, _ := newTestRouter(t, client)

	w := postJSON(t, router, "/math-problem", `{"difficulty":"easy"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	if !strings.Contains(body, "LLM_PARSING_ERROR") {
		t.Fatalf("expected parse error code, got %s", body)
	}
	if strings.Contains(body, "fun problem") {
		t.Fatalf("raw model output leaked into response: %s", body)
	}
}

func TestSubmitAnswerEndpoint(t *testing.T) {
	client := &fakeLLM{
		chatFn: func(_ context.Context, req gemini.Request) (string, string, error) {
			return "Fantastic work! 🎉", "gemini-test", nil
		},
	}
	router, repo := newTestRouter(t, client)

	session, err := repo.CreateSession(context.Background(), "What is 6 x 7?", 42, "medium")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := postJSON(t, router, "/math-problem/submit", `{"session_id":"`+session.ID+`","user_answer":42}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SubmitAnswerResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.IsCorrect {
		t.Fatalf("expected correct verdict")
	}
	if resp.CorrectAnswer != 42 {
		t.Fatalf("expected correct answer 42, got %d", resp.CorrectAnswer)
	}
	if resp.Feedback == "" {
		t.Fatalf("expected feedback text")
	}

	subs, err := repo.ListSubmissions(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 1 || !subs[0].IsCorrect {
		t.Fatalf("expected one correct submission, got %+v", subs)
	}
}

func TestSubmitAnswerUnknownSession(t *testing.T) {
	client := &fakeLLM{}
	router, repo := newTestRouter(t, client)

	w := postJSON(t, router, "/math-problem/submit", `{"session_id":"no-such-session","user_answer":5}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "SESSION_NOT_FOUND") {
		t.Fatalf("expected session not found code, got %s", w.Body.String())
	}
	if client.calls != 0 {
		t.Fatalf("expected no model call, got %d", client.calls)
	}

	subs, err := repo.ListSubmissions(context.Background(), "no-such-session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("expected no persisted submission, got %d", len(subs))
	}
}

func TestSubmitAnswerMissingFields(t *testing.T) {
	client := &fakeLLM{}
	router, _ := newTestRouter(t, client)

	cases := []struct {
		name string
		body string
	}{
		{"missing session_id", `{"user_answer":5}`},
		{"blank session_id", `{"session_id":"  ","user_answer":5}`},
		{"missing user_answer", `{"session_id":"abc"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, router, "/math-problem/submit", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), "MISSING_FIELD") {
				t.Fatalf("expected missing field code, got %s", w.Body.String())
			}
		})
	}

	if client.calls != 0 {
		t.Fatalf("expected no model calls on validation failure, got %d", client.calls)
	}
}

func TestSubmitAnswerNonNumericValue(t *testing.T) {
	client := &fakeLLM{}
	router, _ := newTestRouter(t, client)

	w := postJSON(t, router, "/math-problem/submit", `{"session_id":"abc","user_answer":"nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if client.calls != 0 {
		t.Fatalf("expected no model call, got %d", client.calls)
	}
}

func TestSubmitAnswerStreakMessage(t *testing.T) {
	client := &fakeLLM{
		chatFn: func(_ context.Context, req gemini.Request) (string, string, error) {
			return "Great job! ⭐", "gemini-test", nil
		},
	}
	router, repo := newTestRouter(t, client)

	session, err := repo.CreateSession(context.Background(), "What is 2 + 2?", 4, "easy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := postJSON(t, router, "/math-problem/submit", `{"session_id":"`+session.ID+`","user_answer":4,"streak":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SubmitAnswerResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.StreakMessage != "🌟 Amazing Streak!" {
		t.Fatalf("unexpected streak message: %q", resp.StreakMessage)
	}
}

func TestRequestIDEchoedOnError(t *testing.T) {
	client := &fakeLLM{}
	router, _ := newTestRouter(t, client)

	req := httptest.NewRequest(http.MethodPost, "/math-problem/submit", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.RequestIDHeader, "test-request-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "test-request-id") {
		t.Fatalf("expected request id in body, got %s", w.Body.String())
	}
}
