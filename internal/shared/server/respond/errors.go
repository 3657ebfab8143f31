package respond

import (
	"github.com/gin-gonic/gin"

	"intake-backend/internal/shared/server/views"
	"intake-backend/internal/shared/telemetry"
)

// ErrorPage is the data passed to the error view.
type ErrorPage struct {
	Code  string
	Error string
}

// Error logs the failure and renders the error view with the given status.
func Error(c *gin.Context, status int, code, message string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	views.Render(c, status, views.Error, ErrorPage{Code: code, Error: message})
	c.Abort()
}
