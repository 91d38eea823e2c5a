// Package transport provides the node JSON-RPC client used by the wallet and reader flows.
package transport

import (
	"context"

	"github.com/scashdap/v1/pkg/types"
)

// Client 节点访问接口
// 所有网络调用必须经由此接口，数据地址编解码器本身不做任何 I/O
type Client interface {
	// GetRawTransaction 获取交易详情（verbose 模式）
	GetRawTransaction(ctx context.Context, txid string) (*RawTransaction, error)

	// ScanTxOutSet 扫描地址的未花费输出
	ScanTxOutSet(ctx context.Context, address string) (*ScanTxOutSetResult, error)

	// SendRawTransaction 广播已签名交易，返回交易ID
	SendRawTransaction(ctx context.Context, signedTxHex string) (string, error)
}

// RawTransaction getrawtransaction verbose 结果
type RawTransaction struct {
	TxID          string           `json:"txid"`
	Hash          string           `json:"hash,omitempty"`
	Hex           string           `json:"hex,omitempty"`
	Size          int              `json:"size,omitempty"`
	VSize         int              `json:"vsize,omitempty"`
	Version       int32            `json:"version,omitempty"`
	LockTime      uint32           `json:"locktime,omitempty"`
	Vout          []types.TxOutput `json:"vout"`
	BlockHash     string           `json:"blockhash,omitempty"`
	Confirmations int64            `json:"confirmations,omitempty"`
	Time          int64            `json:"time,omitempty"`
	BlockTime     int64            `json:"blocktime,omitempty"`
}

// Unspent scantxoutset 返回的单个未花费输出
type Unspent struct {
	TxID         string  `json:"txid"`
	Vout         uint32  `json:"vout"`
	ScriptPubKey string  `json:"scriptPubKey"`
	Desc         string  `json:"desc,omitempty"`
	Amount       float64 `json:"amount"`
	Height       int64   `json:"height,omitempty"`
}

// ScanTxOutSetResult scantxoutset start 结果
type ScanTxOutSetResult struct {
	Success     bool      `json:"success"`
	TxOuts      int64     `json:"txouts,omitempty"`
	Height      int64     `json:"height,omitempty"`
	BestBlock   string    `json:"bestblock,omitempty"`
	Unspents    []Unspent `json:"unspents"`
	TotalAmount float64   `json:"total_amount"`
}
