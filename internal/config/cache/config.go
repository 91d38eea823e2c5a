// Package cache 提供 RPC 结果缓存配置
package cache

import (
	"time"

	"github.com/scashdap/v1/pkg/types"
)

// CacheOptions 缓存配置选项
type CacheOptions struct {
	LifeWindow         time.Duration `json:"life_window"`
	CleanWindow        time.Duration `json:"clean_window"`
	MaxEntrySize       int           `json:"max_entry_size"`
	MaxEntriesInWindow int           `json:"max_entries_in_window"`
	Shards             int           `json:"shards"` // 必须是 2 的幂
	Disabled           bool          `json:"disabled"`
}

// Config 缓存配置实现
type Config struct {
	options *CacheOptions
}

// New 创建缓存配置
func New(userConfig *types.UserCacheConfig) *Config {
	options := &CacheOptions{
		LifeWindow:         defaultLifeWindow,
		CleanWindow:        defaultCleanWindow,
		MaxEntrySize:       defaultMaxEntrySize,
		MaxEntriesInWindow: defaultMaxEntriesInWindow,
		Shards:             defaultShards,
		Disabled:           defaultDisabled,
	}
	if userConfig != nil {
		if userConfig.LifeWindow != nil {
			if d, err := time.ParseDuration(*userConfig.LifeWindow); err == nil && d > 0 {
				options.LifeWindow = d
			}
		}
		if userConfig.MaxEntrySize != nil && *userConfig.MaxEntrySize > 0 {
			options.MaxEntrySize = *userConfig.MaxEntrySize
		}
		if userConfig.Disabled != nil {
			options.Disabled = *userConfig.Disabled
		}
	}
	return &Config{options: options}
}

// GetOptions 获取配置选项
func (c *Config) GetOptions() *CacheOptions {
	return c.options
}
