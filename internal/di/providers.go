package di

import (
	"fmt"
	"log/slog"

	"github.com/kyleowen12345/math-problem-generator/internal/config"
	"github.com/kyleowen12345/math-problem-generator/internal/logging"
)

// ProvideLogger configures and returns the logger.
func ProvideLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}
