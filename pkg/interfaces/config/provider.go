// Package config provides configuration provider interfaces.
package config

import (
	apiconfig "github.com/scashdap/v1/internal/config/api"
	cacheconfig "github.com/scashdap/v1/internal/config/cache"
	dapconfig "github.com/scashdap/v1/internal/config/dap"
	logconfig "github.com/scashdap/v1/internal/config/log"
	networkconfig "github.com/scashdap/v1/internal/config/network"
	rpcconfig "github.com/scashdap/v1/internal/config/rpc"
	walletconfig "github.com/scashdap/v1/internal/config/wallet"
	"github.com/scashdap/v1/pkg/types"
)

// Provider 配置提供者接口
type Provider interface {
	// GetNetwork 获取已应用地址前缀与金额覆盖的网络参数
	GetNetwork() (*networkconfig.Params, error)

	// GetDAP 获取编解码器配置
	GetDAP() *dapconfig.DAPOptions

	// GetRPC 获取节点 RPC 配置
	GetRPC() *rpcconfig.RPCOptions

	// GetWallet 获取钱包配置
	GetWallet() *walletconfig.WalletOptions

	// GetAPI 获取HTTP API配置
	GetAPI() *apiconfig.APIOptions

	// GetCache 获取交易查询缓存配置
	GetCache() *cacheconfig.CacheOptions

	// GetLog 获取日志配置
	GetLog() *logconfig.Config

	// GetAppConfig 获取原始应用配置
	GetAppConfig() *types.AppConfig
}
