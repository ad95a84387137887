package di

import (
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/kyleowen12345/math-problem-generator/internal/config"
	"github.com/kyleowen12345/math-problem-generator/internal/store"
	"github.com/kyleowen12345/math-problem-generator/internal/usage"
)

// App bundles the application components.
type App struct {
	Server          *http.Server
	Logger          *slog.Logger
	Config          *config.Config
	DB              *gorm.DB
	Store           *store.Repository
	UsageRepository *usage.Repository
	UsageRecorder   *usage.Recorder
}

// NewApp creates an App instance.
func NewApp(
	server *http.Server,
	logger *slog.Logger,
	cfg *config.Config,
	db *gorm.DB,
	repo *store.Repository,
	usageRepository *usage.Repository,
	usageRecorder *usage.Recorder,
) *App {
	return &App{
		Server:          server,
		Logger:          logger,
		Config:          cfg,
		DB:              db,
		Store:           repo,
		UsageRepository: usageRepository,
		UsageRecorder:   usageRecorder,
	}
}

// Close releases app resources.
func (a *App) Close() {
	if a.DB == nil {
		return
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
