package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apitypes "github.com/scashdap/v1/internal/api/http/types"
	"go.uber.org/zap"
)

// Recovery 捕获处理器 panic 并返回统一错误响应
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		logger.Error("HTTP handler panic",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", GetRequestID(c)),
			zap.Any("panic", recovered))
		WriteError(c, http.StatusInternalServerError,
			apitypes.NewErrorResponse(apitypes.ErrInternal, "Internal server error", nil))
	})
}

// BodyLimit 限制请求体大小
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			WriteError(c, http.StatusRequestEntityTooLarge, apitypes.NewErrorResponse(
				apitypes.ErrRequestTooLarge, "Request body too large",
				map[string]interface{}{"maxBytes": maxBytes}))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// WriteError 写入错误响应并终止处理链
func WriteError(c *gin.Context, status int, resp *apitypes.ErrorResponse) {
	resp.WithRequestID(GetRequestID(c)).WithTimestamp(time.Now().UTC().Format(time.RFC3339))
	c.AbortWithStatusJSON(status, resp)
}
