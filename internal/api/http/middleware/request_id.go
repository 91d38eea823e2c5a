// Package middleware provides gin middlewares for the HTTP API.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID 请求ID头
	HeaderRequestID = "X-Request-ID"

	requestIDKey = "request_id"

	// maxRequestIDLen 客户端传入的请求ID超过该长度时重新生成
	maxRequestIDLen = 64
)

// RequestID 请求ID中间件
// 为每个请求生成唯一追踪ID
type RequestID struct{}

// NewRequestID 创建请求ID中间件
func NewRequestID() *RequestID {
	return &RequestID{}
}

// Middleware 返回Gin中间件
func (m *RequestID) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}

// GetRequestID 从上下文或请求头获取请求ID（与 RequestID 中间件配合）
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok2 := v.(string); ok2 && s != "" {
			return s
		}
	}
	return c.GetHeader(HeaderRequestID)
}
