// Package dap provides the networked flows around the data address codec:
// writing text into a funded transaction and reading it back by txid.
package dap

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/scashdap/v1/client/core/builder"
	"github.com/scashdap/v1/client/core/transport"
	"github.com/scashdap/v1/client/core/wallet"
	dapcodec "github.com/scashdap/v1/internal/core/dap"
	logimpl "github.com/scashdap/v1/internal/core/infrastructure/log"
	logInterface "github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
	"github.com/scashdap/v1/pkg/types"
)

var (
	// ErrEmptyText 没有需要写入的内容
	ErrEmptyText = errors.New("text is empty")
	// ErrInvalidTxID 交易ID格式错误
	ErrInvalidTxID = errors.New("invalid transaction id")
)

// WriterOptions 写入服务参数
type WriterOptions struct {
	Fee       int64 // 固定手续费（聪），为 0 时使用 builder.DefaultFee
	MinUTXO   int64 // 只使用金额严格大于该值的 UTXO
	Logger    logInterface.Logger
	Selector  builder.UTXOSelector // 为空时使用 FirstAboveSelector
	ChangeMin int64                // 找零下限，为 0 时使用 builder.DefaultChangeDust
}

// Writer 数据写入服务
type Writer struct {
	transport transport.Client
	codec     *dapcodec.Codec
	account   *wallet.Account
	selector  builder.UTXOSelector
	fee       int64
	changeMin int64
	logger    logInterface.Logger
}

// NewWriter 创建数据写入服务
func NewWriter(client transport.Client, codec *dapcodec.Codec, account *wallet.Account, opts WriterOptions) *Writer {
	selector := opts.Selector
	if selector == nil {
		selector = builder.NewFirstAboveSelector(opts.MinUTXO)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logimpl.NewNop()
	}
	return &Writer{
		transport: client,
		codec:     codec,
		account:   account,
		selector:  selector,
		fee:       opts.Fee,
		changeMin: opts.ChangeMin,
		logger:    logger,
	}
}

// WriteResult 写入结果
type WriteResult struct {
	TxID      string             `json:"txid"`
	Hex       string             `json:"hex,omitempty"`
	From      string             `json:"from"`
	Outputs   []types.DapOutput  `json:"outputs"`
	Estimate  types.CostEstimate `json:"estimate"`
	Burned    int64              `json:"burned"`
	Fee       int64              `json:"fee"`
	Change    int64              `json:"change"`
	Input     string             `json:"input"`
	Broadcast bool               `json:"broadcast"`
}

// Build 编码文本并构建签名交易，不广播
//
// 流程：
//  1. 编码文本为数据输出
//  2. 扫描账户 UTXO，选择第一个满足阈值的输出
//  3. 构建数据交易（1 个输入，N 个数据输出 + 找零），BIP143 签名
func (w *Writer) Build(ctx context.Context, text string) (*WriteResult, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	outputs, err := w.codec.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("encode text: %w", err)
	}

	from := w.account.AddressString()
	scan, err := w.transport.ScanTxOutSet(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("scan utxos of %s: %w", from, err)
	}
	utxos, err := w.toUTXOs(scan.Unspents)
	if err != nil {
		return nil, err
	}
	input, err := w.selector.Select(utxos)
	if err != nil {
		return nil, fmt.Errorf("select utxo for %s: %w", from, err)
	}
	w.logger.Infof("使用 UTXO %s:%d (%d sats) 写入 %d 个数据输出", input.TxID, input.Vout, input.Amount, len(outputs))

	dtx, err := builder.BuildDataTransaction(builder.DataTxParams{
		Input:      input,
		Outputs:    outputs,
		PrivateKey: w.account.PrivateKey,
		Params:     w.account.Params(),
		Fee:        w.fee,
		ChangeDust: w.changeMin,
	})
	if err != nil {
		return nil, fmt.Errorf("build data transaction: %w", err)
	}

	return &WriteResult{
		TxID:     dtx.TxID,
		Hex:      dtx.Hex,
		From:     from,
		Outputs:  outputs,
		Estimate: w.codec.Estimate(text),
		Burned:   dtx.Burned,
		Fee:      dtx.Fee,
		Change:   dtx.Change,
		Input:    fmt.Sprintf("%s:%d", input.TxID, input.Vout),
	}, nil
}

// Write 编码、构建、签名并广播数据交易
func (w *Writer) Write(ctx context.Context, text string) (*WriteResult, error) {
	result, err := w.Build(ctx, text)
	if err != nil {
		return nil, err
	}

	txid, err := w.transport.SendRawTransaction(ctx, result.Hex)
	if err != nil {
		return nil, fmt.Errorf("broadcast transaction %s: %w", result.TxID, err)
	}
	if txid != result.TxID {
		w.logger.Warnf("节点返回的交易ID与本地计算不一致: local=%s node=%s", result.TxID, txid)
		result.TxID = txid
	}
	result.Broadcast = true
	w.logger.Infof("数据交易已广播: %s", txid)
	return result, nil
}

// toUTXOs 转换节点返回的未花费输出
func (w *Writer) toUTXOs(unspents []transport.Unspent) ([]builder.UTXO, error) {
	utxos := make([]builder.UTXO, 0, len(unspents))
	for _, u := range unspents {
		amount, err := transport.ToSatoshis(u.Amount)
		if err != nil {
			return nil, err
		}
		script := w.account.PkScript
		if u.ScriptPubKey != "" {
			if script, err = hex.DecodeString(u.ScriptPubKey); err != nil {
				return nil, fmt.Errorf("decode scriptPubKey of %s:%d: %w", u.TxID, u.Vout, err)
			}
		}
		utxos = append(utxos, builder.UTXO{TxID: u.TxID, Vout: u.Vout, Amount: amount, PkScript: script})
	}
	return utxos, nil
}

// Reader 数据读取服务
type Reader struct {
	transport transport.Client
	codec     *dapcodec.Codec
}

// NewReader 创建数据读取服务
func NewReader(client transport.Client, codec *dapcodec.Codec) *Reader {
	return &Reader{transport: client, codec: codec}
}

// ReadResult 读取结果
type ReadResult struct {
	TxID          string                     `json:"txid"`
	Text          string                     `json:"text"`
	Found         bool                       `json:"found"`
	Compressed    bool                       `json:"compressed"`
	Chunks        int                        `json:"chunks"`
	Outputs       int                        `json:"outputs"`
	PerProtocol   map[types.ProtocolName]int `json:"per_protocol,omitempty"`
	Confirmations int64                      `json:"confirmations"`
}

// Read 获取交易并还原其中的文本
func (r *Reader) Read(ctx context.Context, txid string) (*ReadResult, error) {
	if _, err := chainhash.NewHashFromStr(txid); err != nil || len(txid) != chainhash.MaxHashStringSize {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTxID, txid)
	}

	tx, err := r.transport.GetRawTransaction(ctx, txid)
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", txid, err)
	}

	outputs := dapcodec.AsOutputs(tx.Vout)
	scan := r.codec.Scan(outputs)
	return &ReadResult{
		TxID:          txid,
		Text:          r.codec.DecodeScan(scan),
		Found:         scan.Chunks > 0,
		Compressed:    scan.Compressed,
		Chunks:        scan.Chunks,
		Outputs:       len(tx.Vout),
		PerProtocol:   scan.PerProtocol,
		Confirmations: tx.Confirmations,
	}, nil
}
