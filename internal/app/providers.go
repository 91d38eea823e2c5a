package app

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	clientdap "github.com/scashdap/v1/client/core/dap"
	"github.com/scashdap/v1/client/core/transport"
	cacheconfig "github.com/scashdap/v1/internal/config/cache"
	rpcconfig "github.com/scashdap/v1/internal/config/rpc"
	dapcodec "github.com/scashdap/v1/internal/core/dap"
	logimpl "github.com/scashdap/v1/internal/core/infrastructure/log"
	"github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
)

// transportModule 节点客户端与读取服务
func transportModule() fx.Option {
	return fx.Module("transport",
		fx.Provide(
			ProvideTransport,
			ProvideReader,
		),
	)
}

// ProvideTransport 创建节点 JSON-RPC 客户端，缓存启用时包装 bigcache
func ProvideTransport(lifecycle fx.Lifecycle, rpc *rpcconfig.RPCOptions, cache *cacheconfig.CacheOptions, logger log.Logger) (transport.Client, error) {
	client := transport.NewJSONRPCClient(rpc.URL, rpc.User, rpc.Pass, rpc.Timeout)
	if cache == nil || cache.Disabled {
		return client, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cached, err := transport.NewCachedClient(ctx, client, cache, logimpl.NewModuleLogger(logger, "transport"))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create transaction cache: %w", err)
	}
	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			defer cancel()
			return cached.Close()
		},
	})
	return cached, nil
}

// ProvideReader 创建交易读取服务
func ProvideReader(client transport.Client, codec *dapcodec.Codec) *clientdap.Reader {
	return clientdap.NewReader(client, codec)
}
