package app

import (
	"github.com/scashdap/v1/pkg/interfaces/config"
	"github.com/scashdap/v1/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径
	configFilePath string

	// 用户配置（优先级高于configFilePath）
	appConfig *types.AppConfig

	// 命令行覆盖的网络名称
	network string

	// API支持开关 (默认启用)
	enableAPI bool

	// 是否访问节点（关闭后 /dap/tx 返回 503）
	enableNode bool
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithAppConfig 直接使用已加载的配置
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithNetwork 覆盖配置文件中的网络名称
func WithNetwork(name string) Option {
	return func(o *options) {
		o.network = name
	}
}

// WithoutAPI 禁用API模块
func WithoutAPI() Option {
	return func(o *options) {
		o.enableAPI = false
	}
}

// WithoutNode 不创建节点客户端
func WithoutNode() Option {
	return func(o *options) {
		o.enableNode = false
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	options := &options{
		enableAPI:  true,
		enableNode: true,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
