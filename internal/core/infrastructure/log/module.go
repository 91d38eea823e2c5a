package log

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/scashdap/v1/internal/config"
	logInterface "github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
)

// ModuleParams 日志模块依赖
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  *config.Provider
}

// ModuleOutput 日志模块输出
type ModuleOutput struct {
	fx.Out

	Logger    logInterface.Logger
	ZapLogger *zap.Logger
}

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideLogger),
	)
}

// ProvideLogger 按配置创建日志记录器，替换全局记录器，停止时刷新缓冲
func ProvideLogger(params ModuleParams) (ModuleOutput, error) {
	logger, err := New(params.Provider.GetLog())
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建日志记录器失败: %w", err)
	}
	SetLogger(logger)

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// stdout/stderr 上的 Sync 在部分平台返回 EINVAL
			_ = logger.Sync()
			return nil
		},
	})

	return ModuleOutput{
		Logger:    logger,
		ZapLogger: logger.GetZapLogger(),
	}, nil
}

// NewModuleLogger 创建带 module 字段的子记录器
func NewModuleLogger(base logInterface.Logger, module string) logInterface.Logger {
	if base == nil {
		return nil
	}
	return base.With("module", module)
}
