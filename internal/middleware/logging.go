package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger emits one log line per inbound request with an RFC3339
// timestamp, the method and the path, then always continues to the next
// handler. It never blocks and never rejects.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		slog.InfoContext(c.Request.Context(), "request",
			"time", time.Now().UTC().Format(time.RFC3339),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.Next()
	}
}
