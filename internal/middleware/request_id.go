package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ai-outfit-assistant/pkg/log"
)

const (
	// HeaderRequestID is echoed back to the caller for correlation.
	HeaderRequestID = "X-Request-ID"

	// RequestIDKey is the gin context key holding the request ID.
	RequestIDKey = "request_id"
)

// RequestID assigns each request a UUID (or adopts the caller-supplied
// one) and threads it into the request context for log correlation.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)

		ctx := log.CtxWithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Recovery converts panics into a 500 without killing the process.
func (m Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				m.l.Errorf(c.Request.Context(), "middleware.Recovery: panic recovered: %v", r)
				c.AbortWithStatusJSON(500, gin.H{
					"error_code": 500,
					"message":    "Internal Server Error",
				})
			}
		}()
		c.Next()
	}
}
