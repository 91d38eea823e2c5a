// Package dap 实现 Scash 数据地址协议（Scash-DAP）编解码器
//
// 文本被切分为 32 字节数据块（4 字节协议头 + 28 字节载荷），每个数据块
// 直接作为 P2WSH 见证程序编码成 bech32 地址，以最小金额作为交易输出上链。
// 解码时扫描交易输出，按输出顺序重组载荷。
//
// 编解码器不做任何 I/O，构造后状态不可变，可并发使用。
package dap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zlib"

	logimpl "github.com/scashdap/v1/internal/core/infrastructure/log"
	dapInterface "github.com/scashdap/v1/pkg/interfaces/dap"
	logInterface "github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
	"github.com/scashdap/v1/pkg/types"
)

const (
	// DefaultBech32HRP 网络上下文未提供前缀时使用的前缀
	DefaultBech32HRP = "scash"
	// DefaultDustValue 每个数据输出的默认金额（聪）
	DefaultDustValue int64 = 546
)

var (
	// ErrInvalidDustValue 数据输出金额为负
	ErrInvalidDustValue = errors.New("dust value must not be negative")
	// ErrMissingProtocol 注册表缺少原文或压缩协议
	ErrMissingProtocol = errors.New("registry is missing a required protocol")
	// ErrInvalidCompressionLevel 压缩级别无效
	ErrInvalidCompressionLevel = errors.New("invalid compression level")
	// ErrInvalidInflateLimit 解压上限为负
	ErrInvalidInflateLimit = errors.New("max inflate size must not be negative")
)

// Options 编解码器构造参数
type Options struct {
	Network types.NetworkContext

	// Registry 为空时使用 DefaultRegistry
	Registry *Registry
	// RawProtocol / ZipProtocol 为空时分别使用 RAW / ZIP
	RawProtocol types.ProtocolName
	ZipProtocol types.ProtocolName

	// CompressionLevel 为 0 时使用 DefaultCompressionLevel
	CompressionLevel int

	// MaxInflateSize 为 0 时使用 DefaultMaxInflateSize
	MaxInflateSize int

	Logger logInterface.Logger
}

// Codec 数据地址编解码器
type Codec struct {
	network  types.NetworkContext
	registry *Registry
	raw      Protocol
	zip      Protocol
	preparer *Preparer
	// maxInflate 解码时解压结果上限
	maxInflate int
	logger     logInterface.Logger
}

var _ dapInterface.Codec = (*Codec)(nil)

// New 创建编解码器
func New(opts Options) (*Codec, error) {
	network := opts.Network
	network.Bech32HRP = strings.ToLower(strings.TrimSpace(network.Bech32HRP))
	if network.Bech32HRP == "" {
		network.Bech32HRP = DefaultBech32HRP
	}
	switch {
	case network.DustValue < 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidDustValue, network.DustValue)
	case network.DustValue == 0:
		network.DustValue = DefaultDustValue
	}

	// 前缀必须能完成一次编解码往返（字符集与 90 字符长度限制）
	sample, err := EncodeChunkAddress(Chunk{}, network.Bech32HRP)
	if err != nil {
		return nil, err
	}
	if _, ok := DecodeChunkAddress(sample, network.Bech32HRP); !ok {
		return nil, fmt.Errorf("%w %q", ErrInvalidHRP, network.Bech32HRP)
	}

	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	rawName, zipName := opts.RawProtocol, opts.ZipProtocol
	if rawName == "" {
		rawName = types.ProtocolRAW
	}
	if zipName == "" {
		zipName = types.ProtocolZIP
	}
	raw, ok := registry.Lookup(rawName)
	if !ok || raw.Compressed {
		return nil, fmt.Errorf("%w: raw protocol %s", ErrMissingProtocol, rawName)
	}
	zip, ok := registry.Lookup(zipName)
	if !ok || !zip.Compressed {
		return nil, fmt.Errorf("%w: compressed protocol %s", ErrMissingProtocol, zipName)
	}

	level := opts.CompressionLevel
	if level == 0 {
		level = DefaultCompressionLevel
	}
	if level < zlib.HuffmanOnly || level > zlib.BestCompression {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompressionLevel, level)
	}

	maxInflate := opts.MaxInflateSize
	switch {
	case maxInflate < 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidInflateLimit, maxInflate)
	case maxInflate == 0:
		maxInflate = DefaultMaxInflateSize
	}

	logger := opts.Logger
	if logger == nil {
		logger = logimpl.NewNop()
	}

	return &Codec{
		network:    network,
		registry:   registry,
		raw:        raw,
		zip:        zip,
		preparer:   NewPreparer(raw, zip, level, logger),
		maxInflate: maxInflate,
		logger:     logger,
	}, nil
}

// Network 返回规范化后的网络上下文
func (c *Codec) Network() types.NetworkContext {
	return c.network
}

// Registry 返回协议注册表
func (c *Codec) Registry() *Registry {
	return c.registry
}

// Prepare 对载荷执行与 Encode 相同的预处理
func (c *Codec) Prepare(payload []byte) Prepared {
	return c.preparer.Prepare(payload)
}

// Encode 将 UTF-8 文本编码为数据输出
func (c *Codec) Encode(text string) ([]types.DapOutput, error) {
	return c.EncodeBytes([]byte(text))
}

// EncodeBytes 将任意字节载荷编码为数据输出，输出顺序即载荷顺序
func (c *Codec) EncodeBytes(payload []byte) ([]types.DapOutput, error) {
	prepared := c.preparer.Prepare(payload)
	chunks := SplitChunks(prepared.Protocol.Magic, prepared.Payload)

	outputs := make([]types.DapOutput, 0, len(chunks))
	for i, chunk := range chunks {
		addr, err := EncodeChunkAddress(chunk, c.network.Bech32HRP)
		if err != nil {
			return nil, fmt.Errorf("encode chunk %d: %w", i, err)
		}
		outputs = append(outputs, types.DapOutput{
			Address: addr,
			Value:   c.network.DustValue,
		})
	}

	c.logger.Debugf("编码完成: mode=%s original=%d payload=%d chunks=%d",
		prepared.Protocol.Name, prepared.OriginalSize, len(prepared.Payload), len(outputs))
	return outputs, nil
}

// Estimate 估算上链成本，与 Encode 使用同一预处理逻辑
func (c *Codec) Estimate(text string) types.CostEstimate {
	prepared := c.preparer.Prepare([]byte(text))
	chunks := ChunkCount(len(prepared.Payload))
	return types.CostEstimate{
		Mode:         prepared.Protocol.Name,
		PayloadSize:  len(prepared.Payload),
		ChunkCount:   chunks,
		TotalCost:    int64(chunks) * c.network.DustValue,
		OriginalSize: prepared.OriginalSize,
	}
}

// IsProtocolAddress 判断地址是否为本协议的数据地址
func (c *Codec) IsProtocolAddress(address string) bool {
	_, ok := c.ProtocolOf(address)
	return ok
}

// ProtocolOf 返回数据地址使用的协议名称，非数据地址返回 false
func (c *Codec) ProtocolOf(address string) (types.ProtocolName, bool) {
	chunk, ok := DecodeChunkAddress(address, c.network.Bech32HRP)
	if !ok {
		return "", false
	}
	p, ok := c.registry.Match(chunk[:])
	if !ok {
		return "", false
	}
	return p.Name, true
}
