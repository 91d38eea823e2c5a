// Package log 提供日志配置选项与默认值
package log

import (
	"strings"

	"github.com/scashdap/v1/pkg/types"
	"go.uber.org/zap/zapcore"
)

// LogOptions 日志配置选项
type LogOptions struct {
	// === 基础配置 ===
	Level     string `json:"level"`      // 日志级别 (debug, info, warn, error)
	ToConsole bool   `json:"to_console"` // 是否输出到控制台
	FilePath  string `json:"file_path"`  // 日志文件路径，stdout/stderr 表示仅控制台

	// === 轮转配置 ===
	MaxSize    int  `json:"max_size"`    // 单个日志文件最大大小(MB)
	MaxBackups int  `json:"max_backups"` // 最大备份文件数
	MaxAge     int  `json:"max_age"`     // 日志文件最大保留天数
	Compress   bool `json:"compress"`    // 是否压缩历史日志文件

	// === 调试配置 ===
	EnableCaller     bool `json:"enable_caller"`     // 是否启用调用者信息
	EnableStacktrace bool `json:"enable_stacktrace"` // 是否启用堆栈跟踪
}

// Config 日志配置实现
type Config struct {
	options *LogOptions
}

// New 创建日志配置，userConfig 为空时使用默认值
func New(userConfig *types.UserLogConfig) *Config {
	options := createDefaultLogOptions()
	if userConfig != nil {
		applyUserLogConfig(options, userConfig)
	}
	return &Config{options: options}
}

// NewFromOptions 直接使用给定选项创建配置
func NewFromOptions(options *LogOptions) *Config {
	if options == nil {
		options = createDefaultLogOptions()
	}
	return &Config{options: options}
}

// createDefaultLogOptions 创建默认日志配置
func createDefaultLogOptions() *LogOptions {
	return &LogOptions{
		Level:            defaultLogLevel,
		ToConsole:        defaultToConsole,
		FilePath:         defaultFilePath,
		MaxSize:          defaultMaxSize,
		MaxBackups:       defaultMaxBackups,
		MaxAge:           defaultMaxAge,
		Compress:         defaultCompress,
		EnableCaller:     defaultEnableCaller,
		EnableStacktrace: defaultEnableStacktrace,
	}
}

// applyUserLogConfig 只覆盖配置文件中实际出现的字段
func applyUserLogConfig(options *LogOptions, userConfig *types.UserLogConfig) {
	if userConfig.Level != nil {
		options.Level = strings.ToLower(*userConfig.Level)
	}
	if userConfig.FilePath != nil && *userConfig.FilePath != "" {
		options.FilePath = *userConfig.FilePath
		// 指定文件路径时默认不输出到控制台
		options.ToConsole = false
	}
	if userConfig.ToConsole != nil {
		options.ToConsole = *userConfig.ToConsole
	}
	if userConfig.MaxSize != nil {
		options.MaxSize = *userConfig.MaxSize
	}
	if userConfig.MaxBackups != nil {
		options.MaxBackups = *userConfig.MaxBackups
	}
	if userConfig.MaxAge != nil {
		options.MaxAge = *userConfig.MaxAge
	}
}

// GetOptions 获取完整的日志配置选项
func (c *Config) GetOptions() *LogOptions {
	return c.options
}

// GetLevel 获取日志级别
func (c *Config) GetLevel() string {
	return c.options.Level
}

// GetZapLevel 获取zap日志级别，未知级别回退为 info
func (c *Config) GetZapLevel() zapcore.Level {
	if level, exists := defaultLevelMap[c.options.Level]; exists {
		return level
	}
	return zapcore.InfoLevel
}

// IsConsoleEnabled 是否启用控制台输出
func (c *Config) IsConsoleEnabled() bool {
	return c.options.ToConsole
}

// GetFilePath 获取日志文件路径
func (c *Config) GetFilePath() string {
	return c.options.FilePath
}

// IsFileOutput 是否写入日志文件
func (c *Config) IsFileOutput() bool {
	p := c.options.FilePath
	return p != "" && p != "stdout" && p != "stderr"
}

// GetMaxSize 获取单个文件最大大小(MB)
func (c *Config) GetMaxSize() int {
	return c.options.MaxSize
}

// GetMaxBackups 获取最大备份文件数
func (c *Config) GetMaxBackups() int {
	return c.options.MaxBackups
}

// GetMaxAge 获取最大保留天数
func (c *Config) GetMaxAge() int {
	return c.options.MaxAge
}

// IsCompressionEnabled 是否启用压缩
func (c *Config) IsCompressionEnabled() bool {
	return c.options.Compress
}

// IsCallerEnabled 是否启用调用者信息
func (c *Config) IsCallerEnabled() bool {
	return c.options.EnableCaller
}

// IsStacktraceEnabled 是否启用堆栈跟踪
func (c *Config) IsStacktraceEnabled() bool {
	return c.options.EnableStacktrace
}

// CreateFileEncoder 创建文件编码器（JSON）
func (c *Config) CreateFileEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
	})
}

// CreateConsoleEncoder 创建控制台编码器
func (c *Config) CreateConsoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
	})
}
