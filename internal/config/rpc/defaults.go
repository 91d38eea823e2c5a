package rpc

import "time"

// 节点 RPC 默认配置
// 默认指向公共浏览器节点，凭据为其公开的只读账户
const (
	defaultURL     = "https://explorer.scash.network/api/rpc"
	defaultUser    = "scash"
	defaultPass    = "scash"
	defaultTimeout = 30 * time.Second
)

// 环境变量覆盖
const (
	EnvURL  = "SCASH_RPC_URL"
	EnvUser = "SCASH_RPC_USER"
	EnvPass = "SCASH_RPC_PASS"
)
