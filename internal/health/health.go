package health

import (
	"context"
	"time"

	"github.com/kyleowen12345/math-problem-generator/internal/config"
	"github.com/kyleowen12345/math-problem-generator/internal/store"
)

var startTime = time.Now()

// Component is one health status entry.
type Component struct {
	Status string         `json:"status"`
	Detail map[string]any `json:"detail"`
}

// Response is the health response body.
type Response struct {
	Status     string               `json:"status"`
	Components map[string]Component `json:"components"`
}

// Collect gathers health status. Deep checks ping the database; the shallow
// variant stays up even when external dependencies are down.
func Collect(ctx context.Context, cfg *config.Config, repo *store.Repository, deepChecks bool) Response {
	components := make(map[string]Component)

	components["app"] = buildAppStatus()
	components["database"] = buildDatabaseStatus(ctx, cfg, repo, deepChecks)
	components["gemini"] = buildGeminiStatus(cfg)

	overall := "ok"
	for _, component := range components {
		if component.Status != "ok" {
			overall = "degraded"
			break
		}
	}

	return Response{
		Status:     overall,
		Components: components,
	}
}

func buildAppStatus() Component {
	uptimeSeconds := int(time.Since(startTime).Seconds())
	return Component{
		Status: "ok",
		Detail: map[string]any{
			"uptime_seconds": uptimeSeconds,
		},
	}
}

func buildGeminiStatus(cfg *config.Config) Component {
	apiKeyPresent := false
	model := ""
	timeoutSeconds := 0

	if cfg != nil {
		apiKeyPresent = cfg.Gemini.PrimaryKey() != ""
		model = cfg.Gemini.Model
		timeoutSeconds = cfg.Gemini.TimeoutSeconds
	}
	status := "ok"
	if !apiKeyPresent {
		status = "degraded"
	}

	return Component{
		Status: status,
		Detail: map[string]any{
			"api_key_present": apiKeyPresent,
			"model":           model,
			"timeout_seconds": timeoutSeconds,
		},
	}
}

func buildDatabaseStatus(ctx context.Context, cfg *config.Config, repo *store.Repository, deepChecks bool) Component {
	connected := false
	pingErr := ""
	host := ""
	name := ""

	if cfg != nil {
		host = cfg.Database.Host
		name = cfg.Database.Name
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if deepChecks && repo != nil {
		checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()

		if err := repo.Ping(checkCtx); err != nil {
			pingErr = err.Error()
		} else {
			connected = true
		}
	}

	status := "ok"
	if deepChecks && !connected {
		status = "degraded"
	}

	detail := map[string]any{
		"connected":    connected,
		"host":         host,
		"name":         name,
		"deep_checked": deepChecks,
	}
	if pingErr != "" {
		detail["ping_error"] = pingErr
	}

	return Component{
		Status: status,
		Detail: detail,
	}
}
