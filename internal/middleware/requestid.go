package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/wakewell/backend/internal/logger"
)

// RequestIDHeader is the header used to propagate request IDs.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a request ID to every request.
// An incoming X-Request-ID is honored so clients can correlate retries;
// otherwise a fresh UUID is generated. The ID is stored on the request
// context for structured logging and echoed back in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Request.Header.Get(RequestIDHeader)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		if requestID == "" {
			requestID = logger.RequestIDFromContext(ctx)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Set("request_id", requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()
	}
}
