package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	apihttp "github.com/scashdap/v1/internal/api/http"
	config "github.com/scashdap/v1/internal/config"
	"github.com/scashdap/v1/internal/core/dap"
	log "github.com/scashdap/v1/internal/core/infrastructure/log"
	configiface "github.com/scashdap/v1/pkg/interfaces/config"
	"github.com/scashdap/v1/pkg/types"
)

// Framework layers
const (
	// 基础设施层
	LayerInfrastructure = "infrastructure"
	// 业务逻辑层
	LayerBusiness = "business"
	// 应用层
	LayerApplication = "application"
)

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts   *options
	fxApp  *fx.App
	server *apihttp.Server
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{
		opts: opts,
	}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		fx.Provide(func() configiface.AppOptions { return b.opts }),
		config.Module(), // 1. 配置(不依赖其他)
		log.Module(),    // 2. 日志(依赖配置)
	}
}

// SetupBusinessLayer 设置业务逻辑层模块
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	modules := []fx.Option{
		dap.Module(), // 编解码器(依赖网络参数与日志)
	}
	if b.opts.enableNode {
		modules = append(modules, transportModule())
	}
	return modules
}

// SetupApplicationLayer 设置应用层模块
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	if !b.opts.enableAPI {
		return nil
	}
	return []fx.Option{
		apihttp.Module(),
		fx.Populate(&b.server),
	}
}

// SetupModules 按层次组装所有模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var allModules []fx.Option
	allModules = append(allModules, b.SetupInfrastructureLayer()...)
	allModules = append(allModules, b.SetupBusinessLayer()...)
	allModules = append(allModules, b.SetupApplicationLayer()...)
	return allModules
}

// CreateFxApp 创建fx应用，依赖图错误在此阶段返回
func (b *Bootstrap) CreateFxApp() error {
	b.fxApp = fx.New(
		fx.Options(b.SetupModules()...),
		fx.NopLogger,
	)
	if err := b.fxApp.Err(); err != nil {
		return fmt.Errorf("组装应用模块失败: %w", err)
	}
	return nil
}

// StartApp 启动应用
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if b.fxApp == nil {
		return fmt.Errorf("应用尚未创建")
	}
	return b.fxApp.Start(ctx)
}

// StopApp 停止应用
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if b.fxApp == nil {
		return nil
	}
	return b.fxApp.Stop(ctx)
}

// resolveAppConfig 加载配置文件并应用命令行覆盖
func resolveAppConfig(opts *options) error {
	if opts.appConfig == nil {
		appConfig, err := config.Load(config.ResolvePath(opts.configFilePath))
		if err != nil {
			return err
		}
		opts.appConfig = appConfig
	}
	if opts.network != "" {
		cp := *opts.appConfig
		cp.Network = types.StringPtr(opts.network)
		opts.appConfig = &cp
	}
	return nil
}

// BootstrapApp 加载配置、组装并启动应用
func BootstrapApp(appOptions ...Option) (App, error) {
	opts := newOptions(appOptions...)
	if err := resolveAppConfig(opts); err != nil {
		return nil, err
	}

	bootstrap := NewBootstrap(opts)
	if err := bootstrap.CreateFxApp(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := bootstrap.StartApp(ctx); err != nil {
		return nil, fmt.Errorf("启动应用失败: %w", err)
	}

	return &internalApp{bootstrap: bootstrap}, nil
}
