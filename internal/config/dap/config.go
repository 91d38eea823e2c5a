// Package dap 提供数据地址协议编解码配置
package dap

import (
	"github.com/scashdap/v1/pkg/types"
)

// DAPOptions 编解码器配置选项
// 地址前缀与数据输出金额属于网络参数，由 network 包提供；这里只记录覆盖值
type DAPOptions struct {
	Bech32HRP        string `json:"bech32_hrp"`        // 为空表示使用网络默认前缀
	DustValue        int64  `json:"dust_value"`        // 为 0 表示使用网络默认金额
	CompressionLevel int    `json:"compression_level"` // zlib 压缩级别
	MaxInflateSize   int    `json:"max_inflate_size"`  // 解压结果上限（字节）
	Debug            bool   `json:"debug"`             // 输出压缩决策日志
}

// Config 编解码器配置实现
type Config struct {
	options *DAPOptions
}

// New 创建编解码器配置
func New(userConfig *types.UserDAPConfig) *Config {
	options := &DAPOptions{
		CompressionLevel: defaultCompressionLevel,
		MaxInflateSize:   defaultMaxInflateSize,
		Debug:            defaultDebug,
	}
	if userConfig != nil {
		if userConfig.Bech32HRP != nil {
			options.Bech32HRP = *userConfig.Bech32HRP
		}
		if userConfig.DustValue != nil {
			options.DustValue = *userConfig.DustValue
		}
		if userConfig.CompressionLevel != nil {
			options.CompressionLevel = *userConfig.CompressionLevel
		}
		if userConfig.MaxInflateSize != nil {
			options.MaxInflateSize = *userConfig.MaxInflateSize
		}
		if userConfig.Debug != nil {
			options.Debug = *userConfig.Debug
		}
	}
	return &Config{options: options}
}

// GetOptions 获取配置选项
func (c *Config) GetOptions() *DAPOptions {
	return c.options
}
