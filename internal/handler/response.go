package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kyleowen12345/math-problem-generator/internal/handler/shared"
)

// writeError writes an error response (delegates to shared.WriteError).
func writeError(c *gin.Context, err error) {
	shared.WriteError(c, err)
}

// bindJSON parses the request body as JSON (delegates to shared.BindJSON).
func bindJSON(c *gin.Context, out any) bool {
	return shared.BindJSON(c, out)
}

// bindJSONAllowEmpty tolerates an absent body (delegates to shared.BindJSONAllowEmpty).
func bindJSONAllowEmpty(c *gin.Context, out any) bool {
	return shared.BindJSONAllowEmpty(c, out)
}
