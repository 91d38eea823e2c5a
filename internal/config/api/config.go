// Package api 提供 HTTP API 服务配置
package api

import (
	"time"

	"github.com/scashdap/v1/pkg/types"
)

// APIOptions HTTP API 配置选项
type APIOptions struct {
	Listen         string        `json:"listen"`           // 监听地址 host:port
	ReadTimeout    time.Duration `json:"read_timeout"`     // 读取超时
	WriteTimeout   time.Duration `json:"write_timeout"`    // 写入超时（包含节点查询时间）
	MaxRequestSize int64         `json:"max_request_size"` // 最大请求大小(字节)
	EnableMetrics  bool          `json:"enable_metrics"`   // 是否暴露 /metrics
	RateLimit      int           `json:"rate_limit"`       // 编解码接口每个IP每秒请求数，0 表示不限流
	NodeRateLimit  int           `json:"node_rate_limit"`  // 交易查询接口每个IP每秒请求数，0 表示不限流
}

// Config API配置实现
type Config struct {
	options *APIOptions
}

// New 创建API配置
func New(userConfig *types.UserAPIConfig) *Config {
	options := createDefaultAPIOptions()
	if userConfig != nil {
		if userConfig.Listen != nil && *userConfig.Listen != "" {
			options.Listen = *userConfig.Listen
		}
		if userConfig.EnableMetrics != nil {
			options.EnableMetrics = *userConfig.EnableMetrics
		}
		if userConfig.RateLimit != nil && *userConfig.RateLimit >= 0 {
			options.RateLimit = *userConfig.RateLimit
		}
		if userConfig.NodeRateLimit != nil && *userConfig.NodeRateLimit >= 0 {
			options.NodeRateLimit = *userConfig.NodeRateLimit
		}
	}
	return &Config{options: options}
}

func createDefaultAPIOptions() *APIOptions {
	return &APIOptions{
		Listen:         defaultListen,
		ReadTimeout:    defaultReadTimeout,
		WriteTimeout:   defaultWriteTimeout,
		MaxRequestSize: defaultMaxRequestSize,
		EnableMetrics:  defaultEnableMetrics,
		RateLimit:      defaultRateLimit,
		NodeRateLimit:  defaultNodeRateLimit,
	}
}

// GetOptions 获取API配置选项
func (c *Config) GetOptions() *APIOptions {
	return c.options
}
