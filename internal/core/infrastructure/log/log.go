// Package log 提供了一个通用的日志接口和基于zap的实现
// 它支持不同级别的日志记录、结构化日志、日志轮转等功能
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logconfig "github.com/scashdap/v1/internal/config/log"
	logInterface "github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 日志级别定义
const (
	DebugLevel = string(logInterface.DebugLevel)
	InfoLevel  = string(logInterface.InfoLevel)
	WarnLevel  = string(logInterface.WarnLevel)
	ErrorLevel = string(logInterface.ErrorLevel)
)

// CLIModeEnv 设置为 "true" 时强制关闭控制台日志，避免干扰命令行输出
const CLIModeEnv = "SCASHDAP_CLI_MODE"

var (
	// 全局日志实例，使用接口类型
	globalLogger logInterface.Logger
	// 用于保护全局日志实例的互斥锁
	mu sync.RWMutex
)

// Logger 是日志记录器的结构体，实现了log.Logger接口
type Logger struct {
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
}

var _ logInterface.Logger = (*Logger)(nil)

// 初始化全局日志记录器
func init() {
	ResetDefault()
}

// ResetDefault 重置全局日志记录器为默认配置
func ResetDefault() {
	logger, err := New(logconfig.New(nil))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize default logger: %v\n", err)
		return
	}
	SetLogger(logger)
}

// createFileWriter 创建带轮转的日志文件写入器
func createFileWriter(logPath string, config *logconfig.Config) zapcore.WriteSyncer {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		// 目录创建失败时退回 stderr
		fmt.Fprintf(os.Stderr, "创建日志目录失败 %s: %v\n", logDir, err)
		return zapcore.AddSync(os.Stderr)
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    config.GetMaxSize(), // megabytes
		MaxBackups: config.GetMaxBackups(),
		MaxAge:     config.GetMaxAge(), // days
		Compress:   config.IsCompressionEnabled(),
	})
}

// New 根据配置创建新的日志记录器
func New(config *logconfig.Config) (logInterface.Logger, error) {
	level := zap.NewAtomicLevelAt(config.GetZapLevel())
	outputPath := config.GetFilePath()

	var cores []zapcore.Core

	// 1. 控制台输出（CLI 模式下强制关闭）
	cliMode := os.Getenv(CLIModeEnv) == "true"
	if !cliMode && (config.IsConsoleEnabled() || !config.IsFileOutput()) {
		output := zapcore.AddSync(os.Stderr)
		if outputPath == "stdout" {
			output = zapcore.AddSync(os.Stdout)
		}
		cores = append(cores, zapcore.NewCore(config.CreateConsoleEncoder(), output, level))
	}

	// 2. 文件输出
	if config.IsFileOutput() {
		absPath, err := filepath.Abs(outputPath)
		if err != nil {
			return nil, fmt.Errorf("获取日志文件绝对路径失败: %w", err)
		}
		cores = append(cores, zapcore.NewCore(config.CreateFileEncoder(), createFileWriter(absPath, config), level))
	}

	var zapOptions []zap.Option
	if config.IsCallerEnabled() {
		zapOptions = append(zapOptions, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if config.IsStacktraceEnabled() {
		zapOptions = append(zapOptions, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	zapLogger := zap.New(zapcore.NewTee(cores...), zapOptions...)
	return &Logger{
		zapLogger: zapLogger,
		sugar:     zapLogger.Sugar(),
	}, nil
}

// NewFromZap 包装已有的 zap.Logger
func NewFromZap(zapLogger *zap.Logger) logInterface.Logger {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return &Logger{
		zapLogger: zapLogger,
		sugar:     zapLogger.Sugar(),
	}
}

// NewNop 返回不输出任何内容的日志记录器
func NewNop() logInterface.Logger {
	return NewFromZap(zap.NewNop())
}

// WithoutDebug 返回丢弃 Debug 级别日志的记录器
// 原记录器本身未启用 Debug 时原样返回
func WithoutDebug(logger logInterface.Logger) logInterface.Logger {
	if logger == nil {
		return nil
	}
	zl := logger.GetZapLogger()
	if zl == nil || !zl.Core().Enabled(zapcore.DebugLevel) {
		return logger
	}
	return NewFromZap(zl.WithOptions(zap.IncreaseLevel(zapcore.InfoLevel)))
}

// GetZapLogger 获取底层的zap日志记录器
func (l *Logger) GetZapLogger() *zap.Logger {
	return l.zapLogger
}

// SetLogger 设置全局日志记录器
func SetLogger(logger logInterface.Logger) {
	if logger == nil {
		return
	}
	mu.Lock()
	globalLogger = logger
	mu.Unlock()
}

// GetLogger 获取全局日志记录器
func GetLogger() logInterface.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// 以下是全局日志函数

// Debugf 使用格式化字符串记录调试级别的日志
func Debugf(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Debugf(format, args...)
	}
}

// Info 记录信息级别的日志
func Info(msg string) {
	if l := GetLogger(); l != nil {
		l.Info(msg)
	}
}

// Infof 使用格式化字符串记录信息级别的日志
func Infof(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Infof(format, args...)
	}
}

// Warnf 使用格式化字符串记录警告级别的日志
func Warnf(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Warnf(format, args...)
	}
}

// Errorf 使用格式化字符串记录错误级别的日志
func Errorf(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Errorf(format, args...)
	}
}

// With 创建带有额外字段的日志记录器
func With(args ...interface{}) logInterface.Logger {
	l := GetLogger()
	if l == nil {
		ResetDefault()
		l = GetLogger()
	}
	return l.With(args...)
}

// toZapFields 将键值对形式的可变参数转换为zap字段
// 参数个数为奇数时忽略最后一个参数
func toZapFields(args ...interface{}) []zap.Field {
	if len(args)%2 != 0 {
		args = args[:len(args)-1]
	}

	fields := make([]zap.Field, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}
	return fields
}

// Debug 记录调试级别的日志
func (l *Logger) Debug(msg string) {
	l.sugar.Debug(msg)
}

// Debugf 使用格式化字符串记录调试级别的日志
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info 记录信息级别的日志
func (l *Logger) Info(msg string) {
	l.sugar.Info(msg)
}

// Infof 使用格式化字符串记录信息级别的日志
func (l *Logger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn 记录警告级别的日志
func (l *Logger) Warn(msg string) {
	l.sugar.Warn(msg)
}

// Warnf 使用格式化字符串记录警告级别的日志
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error 记录错误级别的日志
func (l *Logger) Error(msg string) {
	l.sugar.Error(msg)
}

// Errorf 使用格式化字符串记录错误级别的日志
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// With 返回一个带有额外字段的Logger
func (l *Logger) With(args ...interface{}) logInterface.Logger {
	zl := l.zapLogger.With(toZapFields(args...)...)
	return &Logger{
		zapLogger: zl,
		sugar:     zl.Sugar(),
	}
}

// Sync 同步日志缓冲区到输出
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}
