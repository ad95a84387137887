package handler

import (
	"log/slog"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/kyleowen12345/math-problem-generator/internal/config"
	"github.com/kyleowen12345/math-problem-generator/internal/middleware"
	"github.com/kyleowen12345/math-problem-generator/internal/store"
)

// NewRouter builds the HTTP router.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	repo *store.Repository,
	mathHandler *MathProblemHandler,
	usageHandler *UsageHandler,
) *gin.Engine {
	setGinMode(cfg.Logging.Level)

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gin.Recovery(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.APIKeyAuth(cfg),
		middleware.RateLimit(cfg),
	)

	RegisterHealthRoutes(router, cfg, repo)
	mathHandler.RegisterRoutes(router)
	usageHandler.RegisterRoutes(router)

	return router
}

func setGinMode(level string) {
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
