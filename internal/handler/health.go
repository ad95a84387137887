package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kyleowen12345/math-problem-generator/internal/config"
	"github.com/kyleowen12345/math-problem-generator/internal/health"
	"github.com/kyleowen12345/math-problem-generator/internal/store"
)

// RegisterHealthRoutes registers the health check routes.
func RegisterHealthRoutes(router *gin.Engine, cfg *config.Config, repo *store.Repository) {
	router.GET("/health", func(c *gin.Context) {
		// Liveness stays shallow so external dependency outages never mark
		// the process itself as down.
		payload := health.Collect(c.Request.Context(), cfg, repo, false)
		c.JSON(http.StatusOK, payload)
	})

	router.GET("/health/ready", func(c *gin.Context) {
		payload := health.Collect(c.Request.Context(), cfg, repo, true)
		status := http.StatusOK
		if payload.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, payload)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
