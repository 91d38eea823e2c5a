// Package builder builds and signs the single-input transactions that carry data outputs.
package builder

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/scashdap/v1/pkg/types"
)

const (
	// DefaultFee 固定手续费（聪）
	DefaultFee int64 = 5000
	// DefaultChangeDust 低于该金额的找零并入手续费
	DefaultChangeDust int64 = 546

	txVersion = 2
)

// ErrNoOutputs 没有任何数据输出
var ErrNoOutputs = errors.New("no data outputs")

// DataTxParams 数据交易构建参数
type DataTxParams struct {
	Input      UTXO
	Outputs    []types.DapOutput
	ChangeAddr btcutil.Address // 为空时找零发回输入脚本
	PrivateKey *btcec.PrivateKey
	Params     *chaincfg.Params
	Fee        int64 // 为 0 时使用 DefaultFee
	ChangeDust int64 // 为 0 时使用 DefaultChangeDust
}

// DataTx 已签名的数据交易
type DataTx struct {
	Tx     *wire.MsgTx
	Hex    string
	TxID   string
	Burned int64 // 数据输出金额合计
	Change int64
	Fee    int64 // 实际手续费（包含并入的找零）
}

// BuildDataTransaction 构建并签名数据交易
// 输入必须是 P2WPKH；输出顺序为全部数据输出，之后是可选的找零输出
func BuildDataTransaction(p DataTxParams) (*DataTx, error) {
	if len(p.Outputs) == 0 {
		return nil, ErrNoOutputs
	}
	if p.PrivateKey == nil || p.Params == nil {
		return nil, errors.New("private key and chain params are required")
	}
	if !txscript.IsPayToWitnessPubKeyHash(p.Input.PkScript) {
		return nil, fmt.Errorf("input %s:%d is not p2wpkh", p.Input.TxID, p.Input.Vout)
	}
	fee := p.Fee
	if fee == 0 {
		fee = DefaultFee
	}
	changeDust := p.ChangeDust
	if changeDust == 0 {
		changeDust = DefaultChangeDust
	}

	prevHash, err := chainhash.NewHashFromStr(p.Input.TxID)
	if err != nil {
		return nil, fmt.Errorf("invalid input txid %q: %w", p.Input.TxID, err)
	}

	tx := wire.NewMsgTx(txVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(prevHash, p.Input.Vout), nil, nil))

	var burned int64
	for i, out := range p.Outputs {
		script, err := addressScript(out.Address, p.Params)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		tx.AddTxOut(wire.NewTxOut(out.Value, script))
		burned += out.Value
	}

	change := p.Input.Amount - burned - fee
	if change < 0 {
		return nil, fmt.Errorf("%w: have %d, need %d (outputs %d + fee %d)",
			ErrInsufficientBalance, p.Input.Amount, burned+fee, burned, fee)
	}
	if change >= changeDust {
		changeScript := p.Input.PkScript
		if p.ChangeAddr != nil {
			if changeScript, err = txscript.PayToAddrScript(p.ChangeAddr); err != nil {
				return nil, fmt.Errorf("change script: %w", err)
			}
		}
		tx.AddTxOut(wire.NewTxOut(change, changeScript))
	} else {
		fee += change
		change = 0
	}

	fetcher := txscript.NewCannedPrevOutputFetcher(p.Input.PkScript, p.Input.Amount)
	sigHashes := txscript.NewTxSigHashes(tx, fetcher)
	witness, err := txscript.WitnessSignature(tx, sigHashes, 0, p.Input.Amount,
		p.Input.PkScript, txscript.SigHashAll, p.PrivateKey, true)
	if err != nil {
		return nil, fmt.Errorf("sign input: %w", err)
	}
	tx.TxIn[0].Witness = witness

	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return nil, fmt.Errorf("serialize tx: %w", err)
	}

	return &DataTx{
		Tx:     tx,
		Hex:    hex.EncodeToString(buf.Bytes()),
		TxID:   tx.TxHash().String(),
		Burned: burned,
		Change: change,
		Fee:    fee,
	}, nil
}

// addressScript 将地址转换为锁定脚本
func addressScript(address string, params *chaincfg.Params) ([]byte, error) {
	addr, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return nil, fmt.Errorf("decode address %s: %w", address, err)
	}
	if !addr.IsForNet(params) {
		return nil, fmt.Errorf("address %s is not for network %s", address, params.Name)
	}
	return txscript.PayToAddrScript(addr)
}
