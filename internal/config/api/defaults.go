package api

import "time"

// HTTP API 默认配置
const (
	// defaultListen 仅监听本机，公开部署时通过配置文件修改
	defaultListen = "127.0.0.1:8080"

	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second

	// defaultMaxRequestSize 最大请求体（字节）
	defaultMaxRequestSize = 1 << 20

	defaultEnableMetrics = true

	// 限流（每个客户端IP每秒请求数）
	defaultRateLimit     = 100
	defaultNodeRateLimit = 10
)
