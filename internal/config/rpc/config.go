// Package rpc 提供节点 JSON-RPC 连接配置
package rpc

import (
	"os"
	"time"

	"github.com/scashdap/v1/pkg/types"
)

// RPCOptions 节点连接配置
type RPCOptions struct {
	URL     string        `json:"url"`
	User    string        `json:"user"`
	Pass    string        `json:"pass"`
	Timeout time.Duration `json:"timeout"`
}

// Config RPC 配置实现
type Config struct {
	options *RPCOptions
}

// New 创建 RPC 配置
// 优先级：环境变量 > 配置文件 > 默认值
func New(userConfig *types.UserRPCConfig) *Config {
	options := &RPCOptions{
		URL:     defaultURL,
		User:    defaultUser,
		Pass:    defaultPass,
		Timeout: defaultTimeout,
	}

	if userConfig != nil {
		if userConfig.URL != nil && *userConfig.URL != "" {
			options.URL = *userConfig.URL
		}
		if userConfig.User != nil {
			options.User = *userConfig.User
		}
		if userConfig.Pass != nil {
			options.Pass = *userConfig.Pass
		}
		if userConfig.Timeout != nil {
			if d, err := time.ParseDuration(*userConfig.Timeout); err == nil && d > 0 {
				options.Timeout = d
			}
		}
	}

	applyEnv(options)
	return &Config{options: options}
}

func applyEnv(options *RPCOptions) {
	if v, ok := os.LookupEnv(EnvURL); ok && v != "" {
		options.URL = v
	}
	if v, ok := os.LookupEnv(EnvUser); ok {
		options.User = v
	}
	if v, ok := os.LookupEnv(EnvPass); ok {
		options.Pass = v
	}
}

// GetOptions 获取配置选项
func (c *Config) GetOptions() *RPCOptions {
	return c.options
}
