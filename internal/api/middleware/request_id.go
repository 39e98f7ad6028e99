package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID 请求 ID 的上下文键
const ContextKeyRequestID = "request_id"

// headerRequestID 请求 ID 的透传头
const headerRequestID = "X-Request-ID"

// RequestID 为每个请求分配（或透传）请求 ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header(headerRequestID, requestID)
		c.Next()
	}
}
