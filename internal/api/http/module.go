package http

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	clientdap "github.com/scashdap/v1/client/core/dap"
	"github.com/scashdap/v1/internal/app/version"
	apiconfig "github.com/scashdap/v1/internal/config/api"
	rpcconfig "github.com/scashdap/v1/internal/config/rpc"
	dapcodec "github.com/scashdap/v1/internal/core/dap"
	logimpl "github.com/scashdap/v1/internal/core/infrastructure/log"
	"github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
)

// ModuleParams HTTP 模块依赖
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Options   *apiconfig.APIOptions
	RPC       *rpcconfig.RPCOptions `optional:"true"`
	Codec     *dapcodec.Codec
	Reader    *clientdap.Reader `optional:"true"`
	Logger    log.Logger
}

// Module 返回HTTP API模块
func Module() fx.Option {
	return fx.Module("api.http",
		fx.Provide(
			NewRegistry,
			ProvideServer,
		),
		fx.Invoke(func(*Server) {}),
	)
}

// NewRegistry 创建带有进程与运行时指标的注册表
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// ProvideServer 创建服务器并注册生命周期钩子
func ProvideServer(params ModuleParams, registry *prometheus.Registry) (*Server, error) {
	cfg := ServerConfig{
		Options:  params.Options,
		Codec:    params.Codec,
		Registry: registry,
		Logger:   logimpl.NewModuleLogger(params.Logger, "api.http"),
		Version:  version.GetVersion(),
	}
	if params.Reader != nil {
		cfg.Reader = params.Reader
	}
	if params.RPC != nil && params.Reader != nil {
		cfg.NodeURL = params.RPC.URL
	}

	server, err := NewServer(cfg)
	if err != nil {
		return nil, err
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server, nil
}
