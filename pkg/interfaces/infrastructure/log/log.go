// Package log 定义 Scash-DAP 的日志接口
//
// 编解码核心、钱包、RPC 客户端和 HTTP 服务都只依赖这个接口，
// 具体实现位于 internal/core/infrastructure/log（基于 zap）。
package log

import "go.uber.org/zap"

// LogLevel 日志级别，与配置文件中的 log.level 取值一致
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Logger 日志记录器
//
// f 后缀方法按 fmt 规则格式化；With 的参数为交替的键值对。
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})

	// With 返回附带字段的子记录器
	With(args ...interface{}) Logger

	// Sync 刷新缓冲区
	Sync() error

	// GetZapLogger 返回底层 zap 记录器，供需要结构化字段的调用方使用
	GetZapLogger() *zap.Logger
}
