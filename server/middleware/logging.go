package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tmm22/speechkit/logger"
)

// RequestLogger returns middleware that logs every request with method,
// path, status code, and duration. Health-check paths are silently skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if id := c.GetString(ContextRequestID); id != "" {
			fields[logger.FieldRequestID] = id
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request failed", fields)
		case status >= http.StatusBadRequest:
			log.Warn("request rejected", fields)
		default:
			log.Info("request served", fields)
		}
	}
}
