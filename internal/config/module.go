package config

import (
	"github.com/scashdap/v1/internal/config/api"
	"github.com/scashdap/v1/internal/config/cache"
	"github.com/scashdap/v1/internal/config/dap"
	"github.com/scashdap/v1/internal/config/network"
	"github.com/scashdap/v1/internal/config/rpc"
	"github.com/scashdap/v1/internal/config/wallet"
	"github.com/scashdap/v1/pkg/interfaces/config"
	"github.com/scashdap/v1/pkg/types"
	"go.uber.org/fx"
)

// ConfigParams 定义配置模块的依赖参数
type ConfigParams struct {
	fx.In

	AppOptions config.AppOptions `optional:"true"`
}

// ConfigOutput 定义配置模块的输出结构
type ConfigOutput struct {
	fx.Out

	Provider      *Provider
	ProviderIface config.Provider
}

// Module 返回配置模块
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			ProvideConfigServices,
			func(provider *Provider) (*network.Params, error) {
				return provider.GetNetwork()
			},
			func(provider *Provider) *dap.DAPOptions {
				return provider.GetDAP()
			},
			func(provider *Provider) *rpc.RPCOptions {
				return provider.GetRPC()
			},
			func(provider *Provider) *wallet.WalletOptions {
				return provider.GetWallet()
			},
			func(provider *Provider) *api.APIOptions {
				return provider.GetAPI()
			},
			func(provider *Provider) *cache.CacheOptions {
				return provider.GetCache()
			},
		),
	)
}

// ProvideConfigServices 提供配置服务
func ProvideConfigServices(params ConfigParams) (ConfigOutput, error) {
	var appConfig *types.AppConfig
	if params.AppOptions != nil {
		appConfig = params.AppOptions.GetAppConfig()
	}
	if err := Validate(appConfig); err != nil {
		return ConfigOutput{}, err
	}

	provider := NewProvider(appConfig)
	return ConfigOutput{
		Provider:      provider,
		ProviderIface: provider,
	}, nil
}
