package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	infralog "github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
)

const (
	dapProtocolKey = "dap_protocol"
	dapChunksKey   = "dap_chunks"
)

// AnnotateDAP 记录本次请求编码或解码的数据块，写入访问日志
func AnnotateDAP(c *gin.Context, protocol string, chunks int) {
	if protocol != "" {
		c.Set(dapProtocolKey, protocol)
	}
	c.Set(dapChunksKey, chunks)
}

// Logger 访问日志中间件
type Logger struct {
	zl *zap.Logger
}

// NewLogger 创建访问日志中间件
func NewLogger(logger infralog.Logger) *Logger {
	var zl *zap.Logger
	if logger != nil {
		zl = logger.GetZapLogger()
	}
	if zl == nil {
		zl = zap.NewNop()
	}
	return &Logger{zl: zl.With(zap.String("component", "access"))}
}

// Middleware 返回Gin中间件
func (m *Logger) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}
		ce := m.zl.Check(level, "HTTP request")
		if ce == nil {
			return
		}

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("route", routeLabel(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if v, ok := c.Get(dapProtocolKey); ok {
			fields = append(fields, zap.Any(dapProtocolKey, v))
		}
		if v, ok := c.Get(dapChunksKey); ok {
			fields = append(fields, zap.Any(dapChunksKey, v))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		ce.Write(fields...)
	}
}
