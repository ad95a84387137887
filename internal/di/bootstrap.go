package di

import (
	"context"
	"fmt"

	"github.com/kyleowen12345/math-problem-generator/internal/config"
	mathdomain "github.com/kyleowen12345/math-problem-generator/internal/domain/mathproblem"
	"github.com/kyleowen12345/math-problem-generator/internal/gemini"
	"github.com/kyleowen12345/math-problem-generator/internal/handler"
	"github.com/kyleowen12345/math-problem-generator/internal/metrics"
	"github.com/kyleowen12345/math-problem-generator/internal/server"
	"github.com/kyleowen12345/math-problem-generator/internal/store"
	"github.com/kyleowen12345/math-problem-generator/internal/usage"
)

// InitializeApp wires the application dependencies and returns an App.
func InitializeApp(ctx context.Context) (*App, error) {
	cfg, err := config.ProvideConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	metricsStore := metrics.NewStore()

	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	db, err := store.Open(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	repo := store.New(db)
	if err := repo.AutoMigrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	usageRepository := usage.NewRepository(db)
	if err := usageRepository.AutoMigrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate usage: %w", err)
	}
	usageRecorder := usage.NewRecorder(usageRepository, logger)

	geminiClient, err := gemini.NewClient(cfg, metricsStore, usageRecorder)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	prompts, err := mathdomain.NewPrompts()
	if err != nil {
		return nil, fmt.Errorf("mathproblem prompts: %w", err)
	}

	mathHandler := handler.NewMathProblemHandler(cfg, geminiClient, repo, prompts, logger)
	usageHandler := handler.NewUsageHandler(cfg, usageRepository, metricsStore, logger)

	router := handler.NewRouter(cfg, logger, repo, mathHandler, usageHandler)
	httpServer := server.NewHTTPServer(cfg, router)

	return NewApp(httpServer, logger, cfg, db, repo, usageRepository, usageRecorder), nil
}
