package dap

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/scashdap/v1/client/core/builder"
	"github.com/scashdap/v1/client/core/transport"
	"github.com/scashdap/v1/client/core/wallet"
	"github.com/scashdap/v1/internal/config/network"
	dapcodec "github.com/scashdap/v1/internal/core/dap"
	"github.com/scashdap/v1/pkg/types"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

const fundingTxID = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

// memNode 内存节点：保存广播的交易，并按 verbose 格式返回
type memNode struct {
	params   *chaincfg.Params
	unspents []transport.Unspent
	txs      map[string]*wire.MsgTx
	sent     []string
	scanErr  error
}

func newMemNode(params *chaincfg.Params, unspents ...transport.Unspent) *memNode {
	return &memNode{params: params, unspents: unspents, txs: make(map[string]*wire.MsgTx)}
}

func (n *memNode) GetRawTransaction(ctx context.Context, txid string) (*transport.RawTransaction, error) {
	tx, ok := n.txs[txid]
	if !ok {
		return nil, &transport.RPCError{Method: "getrawtransaction", Code: -5, Message: "No such mempool or blockchain transaction"}
	}
	raw := &transport.RawTransaction{TxID: txid, Confirmations: 1}
	for i, out := range tx.TxOut {
		vout := types.TxOutput{Value: btcutil.Amount(out.Value).ToBTC(), N: uint32(i)}
		_, addrs, _, err := txscript.ExtractPkScriptAddrs(out.PkScript, n.params)
		if err == nil && len(addrs) > 0 {
			vout.ScriptPubKey = &types.ScriptPubKey{Address: addrs[0].EncodeAddress(), Hex: hex.EncodeToString(out.PkScript)}
		}
		raw.Vout = append(raw.Vout, vout)
	}
	return raw, nil
}

func (n *memNode) ScanTxOutSet(ctx context.Context, address string) (*transport.ScanTxOutSetResult, error) {
	if n.scanErr != nil {
		return nil, n.scanErr
	}
	return &transport.ScanTxOutSetResult{Success: true, Unspents: n.unspents}, nil
}

func (n *memNode) SendRawTransaction(ctx context.Context, signedTxHex string) (string, error) {
	raw, err := hex.DecodeString(signedTxHex)
	if err != nil {
		return "", err
	}
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return "", err
	}
	txid := tx.TxHash().String()
	n.txs[txid] = tx
	n.sent = append(n.sent, signedTxHex)
	return txid, nil
}

func newFixture(t *testing.T, unspents ...transport.Unspent) (*memNode, *wallet.Account, *dapcodec.Codec) {
	t.Helper()
	params := network.MustGet(network.Mainnet)
	acct, err := wallet.DeriveAccount(testMnemonic, "", nil, params.ChainParams())
	if err != nil {
		t.Fatalf("DeriveAccount() error = %v", err)
	}
	codec, err := dapcodec.NewFromConfig(params, nil, nil)
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	return newMemNode(params.ChainParams(), unspents...), acct, codec
}

func fundingUnspent(acct *wallet.Account, vout uint32, amount float64) transport.Unspent {
	return transport.Unspent{
		TxID:         fundingTxID,
		Vout:         vout,
		Amount:       amount,
		ScriptPubKey: hex.EncodeToString(acct.PkScript),
	}
}

func TestWriteThenRead(t *testing.T) {
	node, acct, codec := newFixture(t)
	node.unspents = []transport.Unspent{
		fundingUnspent(acct, 0, 0.0005),
		fundingUnspent(acct, 1, 0.01),
	}

	writer := NewWriter(node, codec, acct, WriterOptions{MinUTXO: 100_000})
	reader := NewReader(node, codec)

	texts := []string{
		"Hello Scash DAP",
		strings.Repeat("ScashDAP ", 100),
		"写入链上的一段中文留言，包含标点符号。",
	}
	for _, text := range texts {
		result, err := writer.Write(context.Background(), text)
		if err != nil {
			t.Fatalf("Write(%q) error = %v", text, err)
		}
		if !result.Broadcast {
			t.Errorf("Write() Broadcast = false")
		}
		if result.Input != fundingTxID+":1" {
			t.Errorf("Write() Input = %s, want vout 1 (first above threshold)", result.Input)
		}
		if got, want := result.Burned, int64(len(result.Outputs))*546; got != want {
			t.Errorf("Write() Burned = %d, want %d", got, want)
		}
		if result.Fee+result.Burned+result.Change != 1_000_000 {
			t.Errorf("Write() does not balance: fee=%d burned=%d change=%d", result.Fee, result.Burned, result.Change)
		}
		if result.Estimate.ChunkCount != len(result.Outputs) {
			t.Errorf("Estimate.ChunkCount = %d, want %d", result.Estimate.ChunkCount, len(result.Outputs))
		}

		read, err := reader.Read(context.Background(), result.TxID)
		if err != nil {
			t.Fatalf("Read(%s) error = %v", result.TxID, err)
		}
		if read.Text != text {
			t.Errorf("Read() Text = %q, want %q", read.Text, text)
		}
		if !read.Found || read.Chunks != len(result.Outputs) {
			t.Errorf("Read() Found=%v Chunks=%d, want %d chunks", read.Found, read.Chunks, len(result.Outputs))
		}
		// 找零输出不是数据地址
		if read.Outputs != read.Chunks+1 {
			t.Errorf("Read() Outputs = %d, want chunks+change = %d", read.Outputs, read.Chunks+1)
		}
	}

	if len(node.sent) != len(texts) {
		t.Errorf("broadcast count = %d, want %d", len(node.sent), len(texts))
	}
}

func TestBuildDoesNotBroadcast(t *testing.T) {
	node, acct, codec := newFixture(t)
	node.unspents = []transport.Unspent{fundingUnspent(acct, 0, 0.002)}

	writer := NewWriter(node, codec, acct, WriterOptions{MinUTXO: 100_000, Fee: 1000})
	result, err := writer.Build(context.Background(), "dry run")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.Broadcast || len(node.sent) != 0 {
		t.Errorf("Build() must not broadcast")
	}
	if result.Fee != 1000 {
		t.Errorf("Build() Fee = %d, want 1000", result.Fee)
	}
	if result.Hex == "" || len(result.TxID) != 64 {
		t.Errorf("Build() returned incomplete transaction: %+v", result)
	}
	if result.From != acct.AddressString() {
		t.Errorf("Build() From = %s, want %s", result.From, acct.AddressString())
	}
}

func TestWriteErrors(t *testing.T) {
	t.Run("空文本", func(t *testing.T) {
		node, acct, codec := newFixture(t)
		_, err := NewWriter(node, codec, acct, WriterOptions{}).Write(context.Background(), "")
		if !errors.Is(err, ErrEmptyText) {
			t.Errorf("Write(\"\") error = %v, want ErrEmptyText", err)
		}
	})

	t.Run("没有UTXO", func(t *testing.T) {
		node, acct, codec := newFixture(t)
		_, err := NewWriter(node, codec, acct, WriterOptions{MinUTXO: 100_000}).Write(context.Background(), "hi")
		if !errors.Is(err, builder.ErrNoUTXOs) {
			t.Errorf("Write() error = %v, want ErrNoUTXOs", err)
		}
	})

	t.Run("UTXO金额不足", func(t *testing.T) {
		node, acct, codec := newFixture(t)
		node.unspents = []transport.Unspent{fundingUnspent(acct, 0, 0.001)}
		_, err := NewWriter(node, codec, acct, WriterOptions{MinUTXO: 100_000}).Write(context.Background(), "hi")
		if !errors.Is(err, builder.ErrInsufficientBalance) {
			t.Errorf("Write() error = %v, want ErrInsufficientBalance", err)
		}
	})

	t.Run("扫描失败", func(t *testing.T) {
		node, acct, codec := newFixture(t)
		node.scanErr = errors.New("connection refused")
		_, err := NewWriter(node, codec, acct, WriterOptions{}).Write(context.Background(), "hi")
		if err == nil || !strings.Contains(err.Error(), "connection refused") {
			t.Errorf("Write() error = %v, want wrapped scan error", err)
		}
	})

	t.Run("脚本格式错误", func(t *testing.T) {
		node, acct, codec := newFixture(t)
		node.unspents = []transport.Unspent{{TxID: fundingTxID, Amount: 0.01, ScriptPubKey: "zz"}}
		_, err := NewWriter(node, codec, acct, WriterOptions{}).Write(context.Background(), "hi")
		if err == nil {
			t.Errorf("Write() expected error for malformed scriptPubKey")
		}
	})
}

func TestReadErrors(t *testing.T) {
	node, _, codec := newFixture(t)
	reader := NewReader(node, codec)

	for _, txid := range []string{"", "abc", strings.Repeat("g", 64)} {
		if _, err := reader.Read(context.Background(), txid); !errors.Is(err, ErrInvalidTxID) {
			t.Errorf("Read(%q) error = %v, want ErrInvalidTxID", txid, err)
		}
	}

	_, err := reader.Read(context.Background(), fundingTxID)
	var rpcErr *transport.RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Code != -5 {
		t.Errorf("Read(unknown) error = %v, want RPCError -5", err)
	}
}

func TestReadNonDataTransaction(t *testing.T) {
	node, acct, codec := newFixture(t)

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxOut(wire.NewTxOut(50_000, acct.PkScript))
	txid := tx.TxHash().String()
	node.txs[txid] = tx

	read, err := NewReader(node, codec).Read(context.Background(), txid)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if read.Found || read.Text != "" || read.Chunks != 0 {
		t.Errorf("Read() on plain payment = %+v, want no data", read)
	}
}
