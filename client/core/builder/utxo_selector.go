package builder

import (
	"errors"
	"fmt"
)

// UTXO 表示一个未花费交易输出
type UTXO struct {
	TxID     string // 交易哈希
	Vout     uint32 // 输出索引
	Amount   int64  // 金额（聪）
	PkScript []byte // 锁定脚本
}

// UTXOSelector UTXO选择策略接口
type UTXOSelector interface {
	// Select 选择用于支付的单个 UTXO
	Select(utxos []UTXO) (UTXO, error)
}

var (
	// ErrInsufficientBalance 余额不足
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrNoUTXOs 没有可用的UTXO
	ErrNoUTXOs = errors.New("no available UTXOs")
)

// FirstAboveSelector 按节点返回顺序选择第一个金额严格大于阈值的 UTXO
type FirstAboveSelector struct {
	MinAmount int64
}

// NewFirstAboveSelector 创建选择器
func NewFirstAboveSelector(minAmount int64) UTXOSelector {
	return &FirstAboveSelector{MinAmount: minAmount}
}

// Select 实现UTXOSelector接口
func (s *FirstAboveSelector) Select(utxos []UTXO) (UTXO, error) {
	if len(utxos) == 0 {
		return UTXO{}, ErrNoUTXOs
	}
	for _, u := range utxos {
		if u.Amount > s.MinAmount {
			return u, nil
		}
	}
	return UTXO{}, fmt.Errorf("%w: no UTXO above %d sats among %d", ErrInsufficientBalance, s.MinAmount, len(utxos))
}
