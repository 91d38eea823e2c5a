// Package config 提供应用配置管理功能
package config

import (
	"fmt"

	"github.com/scashdap/v1/internal/config/api"
	"github.com/scashdap/v1/internal/config/cache"
	"github.com/scashdap/v1/internal/config/dap"
	"github.com/scashdap/v1/internal/config/log"
	"github.com/scashdap/v1/internal/config/network"
	"github.com/scashdap/v1/internal/config/rpc"
	"github.com/scashdap/v1/internal/config/wallet"
	"github.com/scashdap/v1/pkg/interfaces/config"
	"github.com/scashdap/v1/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig   *types.AppConfig
	networkName string
}

var _ config.Provider = (*Provider)(nil)

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) *Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	name := network.Mainnet
	if appConfig.Network != nil && *appConfig.Network != "" {
		name = *appConfig.Network
	}
	return &Provider{appConfig: appConfig, networkName: name}
}

// GetAppConfig 获取原始应用配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}

// WithNetwork 返回使用指定网络的提供者副本，其余配置不变
func (p *Provider) WithNetwork(name string) *Provider {
	return &Provider{appConfig: p.appConfig, networkName: name}
}

// NetworkName 当前网络名称
func (p *Provider) NetworkName() string {
	return p.networkName
}

// GetNetwork 获取网络参数，DAP 配置中的前缀与金额覆盖优先
func (p *Provider) GetNetwork() (*network.Params, error) {
	params, err := network.Get(p.networkName)
	if err != nil {
		return nil, err
	}
	opts := p.GetDAP()
	if opts.DustValue < 0 {
		return nil, &ValidationError{
			Field:   "dap.dust_value",
			Message: fmt.Sprintf("数据输出金额不能为负: %d", opts.DustValue),
		}
	}
	return params.WithOverrides(opts.Bech32HRP, opts.DustValue), nil
}

// GetDAP 获取编解码器配置
func (p *Provider) GetDAP() *dap.DAPOptions {
	return dap.New(p.appConfig.DAP).GetOptions()
}

// GetRPC 获取节点 RPC 配置
func (p *Provider) GetRPC() *rpc.RPCOptions {
	return rpc.New(p.appConfig.RPC).GetOptions()
}

// GetWallet 获取钱包配置
func (p *Provider) GetWallet() *wallet.WalletOptions {
	return wallet.New(p.appConfig.Wallet).GetOptions()
}

// GetAPI 获取HTTP API配置
func (p *Provider) GetAPI() *api.APIOptions {
	return api.New(p.appConfig.API).GetOptions()
}

// GetCache 获取交易查询缓存配置
func (p *Provider) GetCache() *cache.CacheOptions {
	return cache.New(p.appConfig.Cache).GetOptions()
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.Config {
	return log.New(p.appConfig.Log)
}
