package metrics

import (
	"sync/atomic"
	"time"

	"github.com/kyleowen12345/math-problem-generator/internal/llm"
)

// Store accumulates LLM call statistics.
type Store struct {
	totalCalls        int64
	totalErrors       int64
	totalInputTokens  int64
	totalOutputTokens int64
	totalDurationMs   int64
}

// NewStore creates an empty statistics store.
func NewStore() *Store {
	return &Store{}
}

// RecordSuccess records a successful call.
func (s *Store) RecordSuccess(duration time.Duration, usage llm.Usage) {
	atomic.AddInt64(&s.totalCalls, 1)
	atomic.AddInt64(&s.totalInputTokens, int64(usage.InputTokens))
	atomic.AddInt64(&s.totalOutputTokens, int64(usage.OutputTokens))
	atomic.AddInt64(&s.totalDurationMs, duration.Milliseconds())
}

// RecordError records a failed call.
func (s *Store) RecordError(duration time.Duration) {
	atomic.AddInt64(&s.totalCalls, 1)
	atomic.AddInt64(&s.totalErrors, 1)
	atomic.AddInt64(&s.totalDurationMs, duration.Milliseconds())
}

// UsageTotals returns accumulated token usage.
func (s *Store) UsageTotals() llm.Usage {
	input := atomic.LoadInt64(&s.totalInputTokens)
	output := atomic.LoadInt64(&s.totalOutputTokens)
	return llm.Usage{
		InputTokens:  int(input),
		OutputTokens: int(output),
		TotalTokens:  int(input + output),
	}
}

// Snapshot returns a point-in-time view of all counters.
func (s *Store) Snapshot() map[string]float64 {
	totalCalls := atomic.LoadInt64(&s.totalCalls)
	totalErrors := atomic.LoadInt64(&s.totalErrors)
	input := atomic.LoadInt64(&s.totalInputTokens)
	output := atomic.LoadInt64(&s.totalOutputTokens)
	durationMs := atomic.LoadInt64(&s.totalDurationMs)

	avgDuration := 0.0
	if totalCalls > 0 {
		avgDuration = float64(durationMs) / float64(totalCalls)
	}

	return map[string]float64{
		"total_calls":         float64(totalCalls),
		"total_errors":        float64(totalErrors),
		"total_input_tokens":  float64(input),
		"total_output_tokens": float64(output),
		"total_tokens":        float64(input + output),
		"total_duration_ms":   float64(durationMs),
		"avg_duration_ms":     avgDuration,
	}
}
