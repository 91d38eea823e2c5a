package log

import (
	"go.uber.org/zap/zapcore"
)

// 日志配置默认值
const (
	// defaultLogLevel 默认日志级别
	defaultLogLevel = "info"

	// defaultToConsole 默认输出到控制台
	defaultToConsole = true

	// defaultFilePath 默认不写文件，仅输出到 stderr
	defaultFilePath = "stderr"

	// === 日志轮转配置 ===

	// defaultMaxSize 单个日志文件最大大小(MB)
	defaultMaxSize = 50

	// defaultMaxBackups 最大备份文件数
	defaultMaxBackups = 5

	// defaultMaxAge 日志文件最大保留天数
	defaultMaxAge = 30

	// defaultCompress 默认压缩历史日志
	defaultCompress = true

	// === 调试配置 ===

	// defaultEnableCaller 默认记录调用者
	defaultEnableCaller = true

	// defaultEnableStacktrace Error 级别附带堆栈
	defaultEnableStacktrace = false
)

// 默认的日志级别映射
var defaultLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"panic": zapcore.PanicLevel,
	"fatal": zapcore.FatalLevel,
}
