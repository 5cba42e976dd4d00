package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wakewell/backend/internal/logger"
)

// RequestLogger logs every HTTP request with structured fields.
// The request_id field is picked up from the context populated by
// RequestID, so this middleware should run after it.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", path),
			logger.Int("status", status),
			logger.Duration("latency", latency),
			logger.Int("bytes", c.Writer.Size()),
		}
		if query != "" {
			fields = append(fields, logger.String("query", query))
		}

		entry := log.WithContext(c.Request.Context())
		switch {
		case status >= 500:
			entry.Error("request", fields...)
		case status >= 400:
			entry.Warn("request", fields...)
		default:
			entry.Info("request", fields...)
		}
	}
}
