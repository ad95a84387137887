package usage

import (
	"context"
	"log/slog"
	"time"
)

// Recorder records per-request token usage.
// Recording failures are logged and never fail the caller's request.
type Recorder struct {
	repo   *Repository
	logger *slog.Logger
}

// NewRecorder creates a Recorder.
func NewRecorder(repo *Repository, logger *slog.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger,
	}
}

// Record accumulates a single request's token usage.
func (r *Recorder) Record(ctx context.Context, inputTokens int64, outputTokens int64) {
	if r == nil || r.repo == nil {
		return
	}
	if inputTokens <= 0 && outputTokens <= 0 {
		return
	}

	if err := r.repo.RecordUsage(ctx, inputTokens, outputTokens, 1, time.Time{}); err != nil {
		if r.logger != nil {
			r.logger.Warn("usage_db_save_failed", "err", err)
		}
	}
}
