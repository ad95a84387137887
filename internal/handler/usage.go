package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kyleowen12345/math-problem-generator/internal/config"
	"github.com/kyleowen12345/math-problem-generator/internal/httperror"
	"github.com/kyleowen12345/math-problem-generator/internal/metrics"
	"github.com/kyleowen12345/math-problem-generator/internal/usage"
)

// DailyUsageResponse is the per-day usage response body.
type DailyUsageResponse struct {
	UsageDate    string `json:"usage_date"`
	InputTokens  int64  `json:"input_tokens"`
	OutputTokens int64  `json:"output_tokens"`
	TotalTokens  int64  `json:"total_tokens"`
	RequestCount int64  `json:"request_count"`
	Model        string `json:"model"`
}

// UsageListResponse is the usage list response body.
type UsageListResponse struct {
	Usages            []DailyUsageResponse `json:"usages"`
	TotalInputTokens  int64                `json:"total_input_tokens"`
	TotalOutputTokens int64                `json:"total_output_tokens"`
	TotalTokens       int64                `json:"total_tokens"`
	TotalRequestCount int64                `json:"total_request_count"`
	Model             string               `json:"model"`
}

// UsageHandler serves usage and in-process LLM metrics.
type UsageHandler struct {
	cfg          *config.Config
	repo         *usage.Repository
	metricsStore *metrics.Store
	logger       *slog.Logger
}

// NewUsageHandler creates the usage handler.
func NewUsageHandler(cfg *config.Config, repo *usage.Repository, metricsStore *metrics.Store, logger *slog.Logger) *UsageHandler {
	return &UsageHandler{
		cfg:          cfg,
		repo:         repo,
		metricsStore: metricsStore,
		logger:       logger,
	}
}

// RegisterRoutes registers the usage routes.
func (h *UsageHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/math-problem/usage")
	group.GET("", h.handleDaily)
	group.GET("/recent", h.handleRecent)
	router.GET("/math-problem/metrics", h.handleMetrics)
}

func (h *UsageHandler) handleDaily(c *gin.Context) {
	usageRow, err := h.repo.GetDailyUsage(c.Request.Context(), time.Time{})
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.buildDailyResponse(usageRow))
}

func (h *UsageHandler) handleRecent(c *gin.Context) {
	days, ok := parseDays(c, 7)
	if !ok {
		return
	}

	usages, err := h.repo.GetRecentUsage(c.Request.Context(), days)
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.buildUsageListResponse(usages))
}

func (h *UsageHandler) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metricsStore.Snapshot())
}

func (h *UsageHandler) buildDailyResponse(usageRow *usage.DailyUsage) DailyUsageResponse {
	model := h.cfg.Gemini.Model
	if usageRow == nil {
		return DailyUsageResponse{
			UsageDate:    time.Now().Format("2006-01-02"),
			InputTokens:  0,
			OutputTokens: 0,
			TotalTokens:  0,
			RequestCount: 0,
			Model:        model,
		}
	}

	return DailyUsageResponse{
		UsageDate:    usageRow.UsageDate.Format("2006-01-02"),
		InputTokens:  usageRow.InputTokens,
		OutputTokens: usageRow.OutputTokens,
		TotalTokens:  usageRow.TotalTokens(),
		RequestCount: usageRow.RequestCount,
		Model:        model,
	}
}

func (h *UsageHandler) buildUsageListResponse(usages []usage.DailyUsage) UsageListResponse {
	model := h.cfg.Gemini.Model
	items := make([]DailyUsageResponse, 0, len(usages))
	var totalInput, totalOutput, totalRequests int64

	for _, row := range usages {
		items = append(items, DailyUsageResponse{
			UsageDate:    row.UsageDate.Format("2006-01-02"),
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			TotalTokens:  row.TotalTokens(),
			RequestCount: row.RequestCount,
			Model:        model,
		})
		totalInput += row.InputTokens
		totalOutput += row.OutputTokens
		totalRequests += row.RequestCount
	}

	return UsageListResponse{
		Usages:            items,
		TotalInputTokens:  totalInput,
		TotalOutputTokens: totalOutput,
		TotalTokens:       totalInput + totalOutput,
		TotalRequestCount: totalRequests,
		Model:             model,
	}
}

func parseDays(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return fallback, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		writeError(c, httperror.NewInvalidInput("days must be a positive integer"))
		return 0, false
	}
	return days, true
}

func (h *UsageHandler) logError(err error) {
	if h.logger == nil || err == nil {
		return
	}
	h.logger.Warn("usage_error", "err", err)
}
