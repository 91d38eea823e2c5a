package wallet

import (
	"fmt"
	"strconv"
	"strings"
)

// BIP44/84 相关常量
const (
	// BIP44Purpose 传统 P2PKH 派生
	BIP44Purpose uint32 = 44
	// BIP84Purpose 原生隔离见证 P2WPKH 派生
	BIP84Purpose uint32 = 84

	// ScashCoinType Scash 沿用比特币主网 coin type
	ScashCoinType uint32 = 0

	// HardenedOffset 硬化派生偏移量
	HardenedOffset uint32 = 0x80000000

	// ExternalChain 外部链（用于接收地址）
	ExternalChain uint32 = 0
	// InternalChain 内部链（用于找零地址）
	InternalChain uint32 = 1
)

// DerivationPath BIP32 五段式派生路径
type DerivationPath struct {
	Purpose      uint32 `json:"purpose"`
	CoinType     uint32 `json:"coin_type"`
	Account      uint32 `json:"account"`
	Change       uint32 `json:"change"`
	AddressIndex uint32 `json:"address_index"`
}

// DefaultDerivationPath 返回默认派生路径 m/84'/0'/0'/0/0
func DefaultDerivationPath() *DerivationPath {
	return &DerivationPath{
		Purpose:  BIP84Purpose,
		CoinType: ScashCoinType,
	}
}

// ParseDerivationPath 解析派生路径字符串
// 支持格式: m/84'/0'/0'/0/0 或 84'/0'/0'/0/0，硬化标记可写作 ' h H
func ParseDerivationPath(path string) (*DerivationPath, error) {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "m/")
	path = strings.TrimPrefix(path, "M/")

	parts := strings.Split(path, "/")
	if len(parts) != 5 {
		return nil, fmt.Errorf("invalid derivation path: expected 5 components, got %d", len(parts))
	}

	dp := &DerivationPath{}
	var err error

	if dp.Purpose, err = parsePathComponent(parts[0], true); err != nil {
		return nil, fmt.Errorf("invalid purpose: %w", err)
	}
	if dp.Purpose != BIP44Purpose && dp.Purpose != BIP84Purpose {
		return nil, fmt.Errorf("invalid purpose: expected %d or %d, got %d", BIP44Purpose, BIP84Purpose, dp.Purpose)
	}
	if dp.CoinType, err = parsePathComponent(parts[1], true); err != nil {
		return nil, fmt.Errorf("invalid coin type: %w", err)
	}
	if dp.Account, err = parsePathComponent(parts[2], true); err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}
	if dp.Change, err = parsePathComponent(parts[3], false); err != nil {
		return nil, fmt.Errorf("invalid change: %w", err)
	}
	if dp.Change > InternalChain {
		return nil, fmt.Errorf("invalid change: expected 0 or 1, got %d", dp.Change)
	}
	if dp.AddressIndex, err = parsePathComponent(parts[4], false); err != nil {
		return nil, fmt.Errorf("invalid address index: %w", err)
	}
	return dp, nil
}

// parsePathComponent 解析路径组件
func parsePathComponent(component string, requireHardened bool) (uint32, error) {
	hardened := strings.HasSuffix(component, "'") || strings.HasSuffix(component, "h") || strings.HasSuffix(component, "H")
	if requireHardened && !hardened {
		return 0, fmt.Errorf("hardened derivation required for %s", component)
	}
	if !requireHardened && hardened {
		return 0, fmt.Errorf("unexpected hardened component %s", component)
	}

	component = strings.TrimRight(component, "'hH")
	value, err := strconv.ParseUint(component, 10, 32)
	if err != nil || uint32(value) >= HardenedOffset {
		return 0, fmt.Errorf("invalid number: %s", component)
	}
	return uint32(value), nil
}

// String 返回路径字符串表示
func (dp *DerivationPath) String() string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d/%d",
		dp.Purpose, dp.CoinType, dp.Account, dp.Change, dp.AddressIndex)
}

// ToUint32Array 转换为 hdkeychain 使用的子索引序列
func (dp *DerivationPath) ToUint32Array() []uint32 {
	return []uint32{
		dp.Purpose + HardenedOffset,
		dp.CoinType + HardenedOffset,
		dp.Account + HardenedOffset,
		dp.Change,
		dp.AddressIndex,
	}
}

// WithAddressIndex 返回使用指定地址索引的新路径
func (dp *DerivationPath) WithAddressIndex(index uint32) *DerivationPath {
	newPath := *dp
	newPath.AddressIndex = index
	return &newPath
}

// IsSegwit 是否为原生隔离见证路径
func (dp *DerivationPath) IsSegwit() bool {
	return dp.Purpose == BIP84Purpose
}
