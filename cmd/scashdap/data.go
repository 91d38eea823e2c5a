package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	clientdap "github.com/scashdap/v1/client/core/dap"
	"github.com/scashdap/v1/internal/core/dap"
	"github.com/scashdap/v1/pkg/types"
)

// maxInputSize 标准输入与 --file 读取上限
const maxInputSize = 1 << 20

var errInputTooLarge = errors.New("input exceeds 1 MiB")

// readAllLimited 读取全部输入，超过上限时报错
func readAllLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxInputSize {
		return nil, errInputTooLarge
	}
	return data, nil
}

// outputRows 数据输出表格行
func outputRows(codec *dap.Codec, outputs []types.DapOutput) [][]string {
	rows := make([][]string, 0, len(outputs))
	for i, out := range outputs {
		protocol, _ := codec.ProtocolOf(out.Address)
		rows = append(rows, []string{
			strconv.Itoa(i),
			out.Address,
			strconv.FormatInt(out.Value, 10),
			protocol.String(),
		})
	}
	return rows
}

func outputLines(outputs []types.DapOutput) string {
	var b strings.Builder
	for i, out := range outputs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %d", out.Address, out.Value)
	}
	return b.String()
}

// ============================================================================
// encode
// ============================================================================

type encodeView struct {
	Outputs  []types.DapOutput  `json:"outputs"`
	Estimate types.CostEstimate `json:"estimate"`
	codec    *dap.Codec
}

func (v encodeView) TableHeader() []string { return []string{"#", "Address", "Value", "Protocol"} }
func (v encodeView) TableRows() [][]string { return outputRows(v.codec, v.Outputs) }
func (v encodeView) PlainText() string     { return outputLines(v.Outputs) }

func newEncodeCmd(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [text]",
		Short: "离线编码文本为数据输出",
		Long: `把文本编码为数据地址列表，不连接节点。
没有参数时从标准输入读取。

示例：
  scashdap encode "Hello Scash DAP"
  cat note.txt | scashdap encode -o table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := joinTextArgs(cmd, args)
			if err != nil {
				return err
			}
			outputs, err := cc.codec.Encode(text)
			if err != nil {
				return err
			}
			return cc.formatter.Print(encodeView{
				Outputs:  outputs,
				Estimate: cc.codec.Estimate(text),
				codec:    cc.codec,
			})
		},
	}
}

// ============================================================================
// decode
// ============================================================================

type decodeView struct {
	Text        string                     `json:"text"`
	Compressed  bool                       `json:"compressed"`
	Mixed       bool                       `json:"mixed,omitempty"`
	Chunks      int                        `json:"chunks"`
	Skipped     int                        `json:"skipped"`
	PerProtocol map[types.ProtocolName]int `json:"per_protocol,omitempty"`
}

func (v decodeView) PlainText() string { return v.Text }

func newDecodeCmd(cc *cliContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "decode [address...]",
		Short: "离线从数据地址还原文本",
		Long: `按顺序解析数据地址并还原文本，不连接节点。
--file 接受 JSON 数组，元素可以是地址字符串、{"address": ...}
或 getrawtransaction 返回的 vout 元素。

示例：
  scashdap decode scash1... scash1...
  scashdap decode --file vout.json -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var outputs []any
			switch {
			case file != "":
				items, err := readOutputsFile(cmd, file)
				if err != nil {
					return err
				}
				outputs = dap.AsOutputs(items)
			case len(args) > 0:
				outputs = dap.AsOutputs(args)
			default:
				return errors.New("需要地址参数或 --file")
			}

			scan := cc.codec.Scan(outputs)
			view := decodeView{
				Text:        cc.codec.DecodeScan(scan),
				Compressed:  scan.Compressed,
				Mixed:       scan.Mixed,
				Chunks:      scan.Chunks,
				Skipped:     scan.Skipped,
				PerProtocol: scan.PerProtocol,
			}
			if view.Chunks == 0 {
				cc.formatter.PrintWarning("没有找到数据地址")
			}
			return cc.formatter.Print(view)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON 输出列表文件，- 表示标准输入")
	return cmd
}

func readOutputsFile(cmd *cobra.Command, path string) ([]json.RawMessage, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = readAllLimited(cmd.InOrStdin())
	} else {
		var f *os.File
		if f, err = os.Open(path); err != nil {
			return nil, fmt.Errorf("打开输出列表: %w", err)
		}
		defer f.Close()
		data, err = readAllLimited(f)
	}
	if err != nil {
		return nil, fmt.Errorf("读取输出列表: %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("解析输出列表: %w", err)
	}
	return items, nil
}

// ============================================================================
// estimate
// ============================================================================

type estimateView struct {
	types.CostEstimate
}

func (v estimateView) PlainText() string {
	return fmt.Sprintf("mode=%s size=%d/%d chunks=%d cost=%d",
		v.Mode, v.PayloadSize, v.OriginalSize, v.ChunkCount, v.TotalCost)
}

func newEstimateCmd(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate [text]",
		Short: "估算写入文本的链上成本",
		Long: `估算编码后的数据块数量与总金额（不含手续费）。

示例：
  scashdap estimate "Hello Scash DAP"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := joinTextArgs(cmd, args)
			if err != nil {
				return err
			}
			return cc.formatter.Print(estimateView{cc.codec.Estimate(text)})
		},
	}
}

// ============================================================================
// write / read
// ============================================================================

type writeView struct {
	*clientdap.WriteResult
	codec *dap.Codec
}

func (v writeView) TableHeader() []string { return []string{"#", "Address", "Value", "Protocol"} }
func (v writeView) TableRows() [][]string { return outputRows(v.codec, v.Outputs) }

func (v writeView) PlainText() string {
	if v.Broadcast {
		return v.TxID
	}
	return v.Hex
}

func newWriteCmd(cc *cliContext) *cobra.Command {
	var (
		envPath string
		dryRun  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "write [text]",
		Short: "把文本写入链上交易",
		Long: `编码文本，使用钱包中第一个足够大的 UTXO 构建、签名并广播交易。
没有参数时从标准输入读取。--dry-run 只输出签名后的交易十六进制。

示例：
  scashdap write "Hello Scash DAP"
  scashdap write --dry-run -o json < note.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := joinTextArgs(cmd, args)
			if err != nil {
				return err
			}
			account, err := cc.loadAccount(envPath)
			if err != nil {
				return err
			}

			opts := cc.provider.GetWallet()
			writer := clientdap.NewWriter(cc.newTransport(), cc.codec, account, clientdap.WriterOptions{
				Fee:     opts.FeeSats,
				MinUTXO: opts.MinUTXOSats,
				Logger:  cc.logger,
			})

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var result *clientdap.WriteResult
			if dryRun {
				result, err = writer.Build(ctx, text)
			} else {
				result, err = writer.Write(ctx, text)
			}
			if err != nil {
				return err
			}

			if result.Broadcast {
				cc.formatter.PrintSuccess(fmt.Sprintf("交易已广播: %s (数据输出 %d 个, 消耗 %d 聪)",
					result.TxID, len(result.Outputs), result.Burned+result.Fee))
			} else {
				cc.formatter.PrintInfo(fmt.Sprintf("未广播: %s", result.TxID))
			}
			return cc.formatter.Print(writeView{WriteResult: result, codec: cc.codec})
		},
	}
	cmd.Flags().StringVar(&envPath, "env", "", "助记词文件路径 (默认读取配置 wallet.env_path)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "只构建并签名，不广播")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "整体超时")
	return cmd
}

type readView struct {
	*clientdap.ReadResult
}

func (v readView) PlainText() string { return v.Text }

func newReadCmd(cc *cliContext) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "read <txid>",
		Short: "从链上交易读取文本",
		Long: `获取交易并从输出中的数据地址还原文本。

示例：
  scashdap read 4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			reader := clientdap.NewReader(cc.newTransport(), cc.codec)
			result, err := reader.Read(ctx, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if !result.Found {
				cc.formatter.PrintWarning("交易中没有数据地址")
			} else if result.Text == "" {
				cc.formatter.PrintWarning("数据块无法还原为文本")
			}
			return cc.formatter.Print(readView{result})
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "请求超时")
	return cmd
}
