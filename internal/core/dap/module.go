package dap

import (
	"fmt"

	dapconfig "github.com/scashdap/v1/internal/config/dap"
	"github.com/scashdap/v1/internal/config/network"
	logimpl "github.com/scashdap/v1/internal/core/infrastructure/log"
	dapInterface "github.com/scashdap/v1/pkg/interfaces/dap"
	logInterface "github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// ModuleParams 编解码模块依赖
type ModuleParams struct {
	fx.In

	Network *network.Params
	Options *dapconfig.DAPOptions
	Logger  logInterface.Logger `optional:"true"`
}

// ModuleOutput 编解码模块输出
type ModuleOutput struct {
	fx.Out

	Codec      *Codec
	CodecIface dapInterface.Codec
}

// Module 返回编解码模块
func Module() fx.Option {
	return fx.Module("dap",
		fx.Provide(ProvideCodec),
	)
}

// ProvideCodec 根据网络参数创建编解码器
func ProvideCodec(params ModuleParams) (ModuleOutput, error) {
	codec, err := NewFromConfig(params.Network, params.Options, params.Logger)
	if err != nil {
		return ModuleOutput{}, err
	}
	return ModuleOutput{Codec: codec, CodecIface: codec}, nil
}

// NewFromConfig 使用网络参数与编解码配置创建编解码器
// 非调试模式下丢弃 Debug 级别日志
func NewFromConfig(params *network.Params, opts *dapconfig.DAPOptions, logger logInterface.Logger) (*Codec, error) {
	if params == nil {
		return nil, fmt.Errorf("network params are required")
	}
	level := DefaultCompressionLevel
	maxInflate := DefaultMaxInflateSize
	debug := false
	if opts != nil {
		level = opts.CompressionLevel
		maxInflate = opts.MaxInflateSize
		debug = opts.Debug
	}

	if logger == nil {
		logger = logimpl.NewNop()
	}
	codecLogger := logimpl.NewModuleLogger(logger, "dap")
	if !debug {
		codecLogger = logimpl.WithoutDebug(codecLogger)
	}

	codec, err := New(Options{
		Network:          params.DapContext(),
		CompressionLevel: level,
		MaxInflateSize:   maxInflate,
		Logger:           codecLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("create dap codec for %s: %w", params.Name, err)
	}
	return codec, nil
}
