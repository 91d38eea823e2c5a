package transport

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// ToSatoshis 将节点返回的币数量转换为聪
func ToSatoshis(amount float64) (int64, error) {
	a, err := btcutil.NewAmount(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %v: %w", amount, err)
	}
	return int64(a), nil
}

// AddrDescriptor 构造 scantxoutset 使用的地址描述符
func AddrDescriptor(address string) string {
	return fmt.Sprintf("addr(%s)", address)
}
