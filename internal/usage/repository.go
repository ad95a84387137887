package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists token usage aggregates on a shared DB handle.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a usage repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate creates the token_usage table if missing.
func (r *Repository) AutoMigrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&TokenUsage{}); err != nil {
		return fmt.Errorf("migrate token_usage: %w", err)
	}
	return nil
}

// RecordUsage accumulates token usage for the given date, or today when zero.
func (r *Repository) RecordUsage(
	ctx context.Context,
	inputTokens int64,
	outputTokens int64,
	requestCount int64,
	usageDate time.Time,
) error {
	if requestCount <= 0 && inputTokens <= 0 && outputTokens <= 0 {
		return nil
	}

	targetDate := usageDate
	if targetDate.IsZero() {
		targetDate = todayDate()
	}

	row := TokenUsage{
		UsageDate:    targetDate,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		RequestCount: requestCount,
		Version:      0,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "usage_date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"input_tokens":  gorm.Expr("token_usage.input_tokens + EXCLUDED.input_tokens"),
			"output_tokens": gorm.Expr("token_usage.output_tokens + EXCLUDED.output_tokens"),
			"request_count": gorm.Expr("token_usage.request_count + EXCLUDED.request_count"),
			"version":       gorm.Expr("token_usage.version + 1"),
		}),
	}).Create(&row).Error
}

// GetDailyUsage returns usage for the given date, or today when zero.
// A missing row yields nil without error.
func (r *Repository) GetDailyUsage(ctx context.Context, usageDate time.Time) (*DailyUsage, error) {
	targetDate := usageDate
	if targetDate.IsZero() {
		targetDate = todayDate()
	}

	var row TokenUsage
	result := r.db.WithContext(ctx).Where("usage_date = ?", targetDate).First(&row)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &DailyUsage{
		UsageDate:    row.UsageDate,
		InputTokens:  row.InputTokens,
		OutputTokens: row.OutputTokens,
		RequestCount: row.RequestCount,
	}, nil
}

// GetRecentUsage returns up to the last N days of usage, newest first.
func (r *Repository) GetRecentUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	if days <= 0 {
		days = 7
	}

	var rows []TokenUsage
	if err := r.db.WithContext(ctx).Order("usage_date desc").Limit(days).Find(&rows).Error; err != nil {
		return nil, err
	}

	usages := make([]DailyUsage, 0, len(rows))
	for _, row := range rows {
		usages = append(usages, DailyUsage{
			UsageDate:    row.UsageDate,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			RequestCount: row.RequestCount,
		})
	}
	return usages, nil
}

func todayDate() time.Time {
	now := time.Now().In(time.Local)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
