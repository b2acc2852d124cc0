package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/shared/telemetry"
)

// OK writes a 200 response with the standard success envelope.
func OK(c *gin.Context, data any) {
	JSON(c, http.StatusOK, data)
}

// JSON writes a response with the standard success envelope at the given status.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// Message writes a 200 response carrying only a human-readable message.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

// Error logs and sends a standardized failure envelope, aborting the request.
func Error(c *gin.Context, status int, message string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}
