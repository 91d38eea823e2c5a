package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/allegro/bigcache/v3"

	cacheconfig "github.com/scashdap/v1/internal/config/cache"
	logInterface "github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
)

// CachedClient 为 GetRawTransaction 提供基于 BigCache 的内存缓存
// 只缓存已确认的交易；其余调用直接转发
type CachedClient struct {
	Client
	cache  *bigcache.BigCache
	logger logInterface.Logger
}

var _ Client = (*CachedClient)(nil)

// NewCachedClient 包装已有客户端
func NewCachedClient(ctx context.Context, inner Client, opts *cacheconfig.CacheOptions, logger logInterface.Logger) (*CachedClient, error) {
	if inner == nil {
		return nil, errors.New("inner client is required")
	}
	if opts == nil {
		opts = cacheconfig.New(nil).GetOptions()
	}

	cfg := bigcache.DefaultConfig(opts.LifeWindow)
	cfg.CleanWindow = opts.CleanWindow
	cfg.MaxEntrySize = opts.MaxEntrySize
	cfg.MaxEntriesInWindow = opts.MaxEntriesInWindow
	cfg.Shards = opts.Shards
	cfg.Verbose = false

	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create bigcache: %w", err)
	}
	return &CachedClient{Client: inner, cache: cache, logger: logger}, nil
}

// GetRawTransaction 优先读取缓存
func (c *CachedClient) GetRawTransaction(ctx context.Context, txid string) (*RawTransaction, error) {
	if data, err := c.cache.Get(txid); err == nil {
		var tx RawTransaction
		if err := json.Unmarshal(data, &tx); err == nil {
			c.debugf("交易缓存命中: %s", txid)
			return &tx, nil
		}
		_ = c.cache.Delete(txid)
	}

	tx, err := c.Client.GetRawTransaction(ctx, txid)
	if err != nil {
		return nil, err
	}

	if tx.Confirmations > 0 {
		if data, err := json.Marshal(tx); err == nil {
			if err := c.cache.Set(txid, data); err != nil {
				c.debugf("写入交易缓存失败: %v", err)
			}
		}
	}
	return tx, nil
}

// Len 返回缓存条目数
func (c *CachedClient) Len() int {
	return c.cache.Len()
}

// Close 释放缓存
func (c *CachedClient) Close() error {
	return c.cache.Close()
}

func (c *CachedClient) debugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
