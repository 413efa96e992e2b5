package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seo-backend/internal/shared/telemetry"
)

// Failure is the standardized failure body. The UI checks the success flag,
// not the HTTP status code, so failures are served with 200 unless noted.
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Debug   any    `json:"debug,omitempty"`
}

// Fail sends a failure body with HTTP 200.
func Fail(c *gin.Context, message string) {
	FailWithDebug(c, message, nil)
}

// FailWithDebug sends a failure body with an extra debug payload.
func FailWithDebug(c *gin.Context, message string, debug any) {
	telemetry.Error("http.failure", map[string]any{
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})
	c.AbortWithStatusJSON(http.StatusOK, Failure{Success: false, Message: message, Debug: debug})
}

// MethodNotAllowed is the one failure served with a real error status.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, Failure{Success: false, Message: "Method not allowed"})
}

// InternalError sends a failure body for unexpected server-side errors.
func InternalError(c *gin.Context, message string) {
	telemetry.Error("http.internal", map[string]any{
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})
	c.AbortWithStatusJSON(http.StatusInternalServerError, Failure{Success: false, Message: message})
}
