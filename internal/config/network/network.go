// Package network 定义 Scash 网络参数
//
// 每个网络参数集同时服务两类调用方：
// - 数据地址编解码器只关心地址前缀和最小输出金额（types.NetworkContext）
// - 钱包和交易构建器需要完整的 btcd chaincfg.Params
package network

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/scashdap/v1/pkg/types"
)

const (
	// Mainnet Scash 主网
	Mainnet = "mainnet"
	// Regtest 本地回归测试网络
	Regtest = "regtest"

	// DefaultBech32HRP 网络未指定前缀时使用的默认前缀
	DefaultBech32HRP = "scash"
	// DefaultDustValue 链上可接受的最小输出金额（聪）
	DefaultDustValue int64 = 546
)

// Params 网络参数
type Params struct {
	Name          string
	MessagePrefix string

	// 地址参数
	Bech32HRP        string
	PubKeyHashAddrID byte
	ScriptHashAddrID byte
	PrivateKeyID     byte

	// BIP32 扩展密钥版本
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte

	// BIP44/84 coin type
	CoinType uint32

	// DustValue 数据输出金额（聪）
	DustValue int64
}

var (
	registry = make(map[string]*Params)
	regMu    sync.RWMutex

	chainCache = make(map[string]*chaincfg.Params)
	chainMu    sync.Mutex
)

func init() {
	Register(&Params{
		Name:             Mainnet,
		MessagePrefix:    "\x18Scash Signed Message:\n",
		Bech32HRP:        "scash",
		PubKeyHashAddrID: 0x3c,
		ScriptHashAddrID: 0x7d,
		PrivateKeyID:     0x80,
		HDPrivateKeyID:   [4]byte{0x04, 0x88, 0xad, 0xe4}, // xprv
		HDPublicKeyID:    [4]byte{0x04, 0x88, 0xb2, 0x1e}, // xpub
		CoinType:         0,
		DustValue:        DefaultDustValue,
	})

	Register(&Params{
		Name:             Regtest,
		MessagePrefix:    "\x18Bitcoin Signed Message:\n",
		Bech32HRP:        "bcrt",
		PubKeyHashAddrID: 0x6f,
		ScriptHashAddrID: 0xc4,
		PrivateKeyID:     0xef,
		HDPrivateKeyID:   [4]byte{0x04, 0x35, 0x83, 0x94}, // tprv
		HDPublicKeyID:    [4]byte{0x04, 0x35, 0x87, 0xcf}, // tpub
		CoinType:         1,
		DustValue:        DefaultDustValue,
	})
}

// Register 注册网络参数，同名参数会被覆盖
func Register(p *Params) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[strings.ToLower(p.Name)] = p
}

// Get 按名称获取网络参数
func Get(name string) (*Params, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	p, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown network %q (known: %s)", name, strings.Join(namesLocked(), ", "))
	}
	return p, nil
}

// MustGet 按名称获取网络参数，名称未注册时 panic
// 仅用于内置网络名称
func MustGet(name string) *Params {
	p, err := Get(name)
	if err != nil {
		panic(err)
	}
	return p
}

// Names 返回已注册网络名称（排序）
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DapContext 返回编解码器使用的网络上下文
func (p *Params) DapContext() types.NetworkContext {
	return types.NetworkContext{
		Name:      p.Name,
		Bech32HRP: p.Bech32HRP,
		DustValue: p.DustValue,
	}
}

// WithOverrides 返回应用了前缀和金额覆盖的副本，空值表示不覆盖
func (p *Params) WithOverrides(hrp string, dust int64) *Params {
	cp := *p
	if hrp != "" {
		cp.Bech32HRP = strings.ToLower(hrp)
	}
	if dust > 0 {
		cp.DustValue = dust
	}
	return &cp
}

// ChainParams 转换为 btcd 的链参数
// 以比特币主网参数为模板，只替换地址与密钥相关字段
// 结果按网络名与前缀缓存，并注册到 chaincfg，使 btcutil.DecodeAddress 能识别该前缀
func (p *Params) ChainParams() *chaincfg.Params {
	key := p.Name + "/" + p.Bech32HRP

	chainMu.Lock()
	defer chainMu.Unlock()
	if cp, ok := chainCache[key]; ok {
		return cp
	}

	cp := chaincfg.MainNetParams
	cp.Name = "scash-" + p.Name
	cp.Net = netMagic(key)
	cp.Bech32HRPSegwit = p.Bech32HRP
	cp.PubKeyHashAddrID = p.PubKeyHashAddrID
	cp.ScriptHashAddrID = p.ScriptHashAddrID
	cp.PrivateKeyID = p.PrivateKeyID
	cp.HDPrivateKeyID = p.HDPrivateKeyID
	cp.HDPublicKeyID = p.HDPublicKeyID
	cp.HDCoinType = p.CoinType

	// 重复注册只会返回 ErrDuplicateNet，参数本身仍然可用
	_ = chaincfg.Register(&cp)

	chainCache[key] = &cp
	return &cp
}

// netMagic 为自定义参数生成不与内置网络冲突的标识
func netMagic(key string) wire.BitcoinNet {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return wire.BitcoinNet(h.Sum32())
}
