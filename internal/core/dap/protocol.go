package dap

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/scashdap/v1/pkg/types"
)

// 数据块布局：4 字节协议头 + 28 字节载荷 = 32 字节
const (
	// MagicSize 协议头长度
	MagicSize = 4
	// ChunkSize 数据块长度，与 P2WSH 见证程序长度一致
	ChunkSize = 32
	// ChunkPayloadSize 每个数据块可承载的载荷长度
	ChunkPayloadSize = ChunkSize - MagicSize
)

var (
	// ErrEmptyProtocolName 协议名称为空
	ErrEmptyProtocolName = errors.New("protocol name is empty")
	// ErrDuplicateProtocol 协议名称重复
	ErrDuplicateProtocol = errors.New("duplicate protocol name")
	// ErrDuplicateMagic 协议头重复
	ErrDuplicateMagic = errors.New("duplicate protocol magic")
)

// Protocol 协议描述符
type Protocol struct {
	Name        types.ProtocolName
	Magic       [MagicSize]byte
	Description string
	// Compressed 为 true 时，解码端需要对重组后的载荷执行 zlib 解压
	Compressed bool
}

// 内置协议
var (
	ProtocolRAW = Protocol{
		Name:        types.ProtocolRAW,
		Magic:       [MagicSize]byte{0xAF, 0xAF, 0xAF, 0xAF},
		Description: "原文模式 - 直接存储UTF8文本",
	}
	ProtocolZIP = Protocol{
		Name:        types.ProtocolZIP,
		Magic:       [MagicSize]byte{0xAC, 0xAC, 0xAC, 0xAC},
		Description: "压缩模式 - 使用Deflate算法压缩",
		Compressed:  true,
	}
)

// Registry 有序的协议注册表，构造后只读
type Registry struct {
	protocols []Protocol
	byName    map[types.ProtocolName]int
}

// NewRegistry 按给定顺序创建协议注册表
// 名称与协议头都必须两两不同
func NewRegistry(protocols ...Protocol) (*Registry, error) {
	r := &Registry{
		protocols: make([]Protocol, 0, len(protocols)),
		byName:    make(map[types.ProtocolName]int, len(protocols)),
	}
	for _, p := range protocols {
		if p.Name == "" {
			return nil, ErrEmptyProtocolName
		}
		if _, exists := r.byName[p.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProtocol, p.Name)
		}
		for _, existing := range r.protocols {
			if existing.Magic == p.Magic {
				return nil, fmt.Errorf("%w: %s and %s share % X", ErrDuplicateMagic, existing.Name, p.Name, p.Magic)
			}
		}
		r.byName[p.Name] = len(r.protocols)
		r.protocols = append(r.protocols, p)
	}
	return r, nil
}

// DefaultRegistry 返回只包含 RAW 与 ZIP 的注册表
func DefaultRegistry() *Registry {
	r, err := NewRegistry(ProtocolRAW, ProtocolZIP)
	if err != nil {
		// 内置协议互不冲突
		panic(err)
	}
	return r
}

// Match 按注册顺序比较协议头，prefix 不足 4 字节时不匹配
func (r *Registry) Match(prefix []byte) (Protocol, bool) {
	if len(prefix) < MagicSize {
		return Protocol{}, false
	}
	for _, p := range r.protocols {
		if bytes.Equal(prefix[:MagicSize], p.Magic[:]) {
			return p, true
		}
	}
	return Protocol{}, false
}

// Lookup 按名称查找协议
func (r *Registry) Lookup(name types.ProtocolName) (Protocol, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Protocol{}, false
	}
	return r.protocols[i], true
}

// Protocols 返回按注册顺序排列的协议副本
func (r *Registry) Protocols() []Protocol {
	out := make([]Protocol, len(r.protocols))
	copy(out, r.protocols)
	return out
}

// Len 返回已注册协议数量
func (r *Registry) Len() int {
	return len(r.protocols)
}
