package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kyleowen12345/math-problem-generator/internal/config"
)

// ErrSessionNotFound is returned when no session exists for an ID.
var ErrSessionNotFound = errors.New("problem session not found")

// Repository is the GORM-backed store for sessions and submissions.
type Repository struct {
	db *gorm.DB
}

// New creates a Repository on an open DB handle.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Open connects to Postgres using the database config and applies pool settings.
func Open(cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get db handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MinPool)
	sqlDB.SetMaxOpenConns(cfg.MaxPool)
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}
	if cfg.ConnMaxIdleTimeMinutes > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute)
	}

	if logger != nil {
		logger.Info("db_connected", "host", cfg.Host, "name", cfg.Name)
	}
	return db, nil
}

// AutoMigrate creates the session and submission tables if missing.
func (r *Repository) AutoMigrate(ctx context.Context) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("db is nil")
	}
	if err := r.db.WithContext(ctx).AutoMigrate(
		&ProblemSession{},
		&Submission{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

// CreateSession persists a new problem session and returns it with its ID.
func (r *Repository) CreateSession(ctx context.Context, problemText string, correctAnswer int, difficulty string) (*ProblemSession, error) {
	session := &ProblemSession{
		ID:            uuid.NewString(),
		ProblemText:   problemText,
		CorrectAnswer: correctAnswer,
		Difficulty:    difficulty,
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// GetSession loads a session by ID. Missing rows map to ErrSessionNotFound.
func (r *Repository) GetSession(ctx context.Context, sessionID string) (*ProblemSession, error) {
	var session ProblemSession
	result := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&session)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("get session: %w", result.Error)
	}
	return &session, nil
}

// CreateSubmission appends a graded answer for a session.
func (r *Repository) CreateSubmission(ctx context.Context, sub *Submission) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// ListSubmissions returns all submissions for a session, oldest first.
func (r *Repository) ListSubmissions(ctx context.Context, sessionID string) ([]Submission, error) {
	var subs []Submission
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at asc").
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// Ping verifies database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
