package dap

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/scashdap/v1/internal/config/network"
	logimpl "github.com/scashdap/v1/internal/core/infrastructure/log"
	"github.com/scashdap/v1/pkg/types"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := New(Options{})
	require.NoError(t, err)
	return codec
}

// chunkOutputs 直接按给定协议构造数据输出，不经过压缩决策
func chunkOutputs(t *testing.T, p Protocol, payload []byte) []types.DapOutput {
	t.Helper()
	var outputs []types.DapOutput
	for _, chunk := range SplitChunks(p.Magic, payload) {
		addr, err := EncodeChunkAddress(chunk, DefaultBech32HRP)
		require.NoError(t, err)
		outputs = append(outputs, types.DapOutput{Address: addr, Value: DefaultDustValue})
	}
	return outputs
}

func TestNewDefaults(t *testing.T) {
	codec := newTestCodec(t)
	assert.Equal(t, "scash", codec.Network().Bech32HRP)
	assert.Equal(t, int64(546), codec.Network().DustValue)
	assert.Equal(t, 2, codec.Registry().Len())

	upper, err := New(Options{Network: types.NetworkContext{Bech32HRP: " SCASH "}})
	require.NoError(t, err)
	assert.Equal(t, "scash", upper.Network().Bech32HRP)
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	_, err := New(Options{Network: types.NetworkContext{DustValue: -1}})
	assert.ErrorIs(t, err, ErrInvalidDustValue)

	_, err = New(Options{Network: types.NetworkContext{Bech32HRP: "sc ash"}})
	assert.ErrorIs(t, err, ErrInvalidHRP)

	_, err = New(Options{Network: types.NetworkContext{Bech32HRP: strings.Repeat("s", 40)}})
	assert.ErrorIs(t, err, ErrInvalidHRP)

	_, err = New(Options{CompressionLevel: 11})
	assert.ErrorIs(t, err, ErrInvalidCompressionLevel)

	_, err = New(Options{MaxInflateSize: -1})
	assert.ErrorIs(t, err, ErrInvalidInflateLimit)

	rawOnly, err := NewRegistry(ProtocolRAW)
	require.NoError(t, err)
	_, err = New(Options{Registry: rawOnly})
	assert.ErrorIs(t, err, ErrMissingProtocol)
}

func TestEncodeShortTextIsSingleRawChunk(t *testing.T) {
	codec := newTestCodec(t)
	const text = "Hello Scash DAP"

	outputs, err := codec.Encode(text)
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, int64(546), outputs[0].Value)
	assert.True(t, strings.HasPrefix(outputs[0].Address, "scash1"))

	mode, ok := codec.ProtocolOf(outputs[0].Address)
	require.True(t, ok)
	assert.Equal(t, types.ProtocolRAW, mode)

	// 字节布局：协议头 + 原文 + 补零
	chunk, ok := DecodeChunkAddress(outputs[0].Address, "scash")
	require.True(t, ok)
	assert.Equal(t, []byte{0xAF, 0xAF, 0xAF, 0xAF}, chunk[:4])
	assert.Equal(t, text, string(chunk[4:4+len(text)]))
	assert.Equal(t, make([]byte, ChunkSize-4-len(text)), chunk[4+len(text):])

	assert.Equal(t, text, codec.Decode(AsOutputs(outputs)))
}

func TestEncodeRepetitiveTextUsesCompression(t *testing.T) {
	codec := newTestCodec(t)
	text := strings.Repeat("ScashDAP ", 100)

	outputs, err := codec.Encode(text)
	require.NoError(t, err)
	require.NotEmpty(t, outputs)

	for _, out := range outputs {
		mode, ok := codec.ProtocolOf(out.Address)
		require.True(t, ok)
		assert.Equal(t, types.ProtocolZIP, mode)
	}

	estimate := codec.Estimate(text)
	assert.Equal(t, types.ProtocolZIP, estimate.Mode)
	assert.Equal(t, len(outputs), estimate.ChunkCount)
	assert.Equal(t, 900, estimate.OriginalSize)
	assert.Less(t, estimate.PayloadSize, 900)

	assert.Equal(t, text, codec.Decode(AsOutputs(outputs)))
}

func TestEncodeEmpty(t *testing.T) {
	codec := newTestCodec(t)

	outputs, err := codec.Encode("")
	require.NoError(t, err)
	assert.Empty(t, outputs)
	assert.Equal(t, "", codec.Decode(AsOutputs(outputs)))
	assert.Equal(t, "", codec.Decode(nil))

	estimate := codec.Estimate("")
	assert.Equal(t, types.CostEstimate{Mode: types.ProtocolRAW}, estimate)
}

func TestEncodeExactMultipleOfPayloadSize(t *testing.T) {
	codec := newTestCodec(t)
	// 56 个互不相同的字符，压缩无法减小体积
	text := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123"
	require.Len(t, text, 56)

	outputs, err := codec.Encode(text)
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, 2, codec.Estimate(text).ChunkCount)
	assert.Equal(t, text, codec.Decode(AsOutputs(outputs)))
}

func TestChunkCountLaw(t *testing.T) {
	codec := newTestCodec(t)
	inputs := []string{
		"",
		"a",
		"Hello Scash DAP",
		strings.Repeat("ScashDAP ", 100),
		"abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789",
		strings.Repeat("链上数据", 40),
	}
	for _, in := range inputs {
		outputs, err := codec.Encode(in)
		require.NoError(t, err)
		estimate := codec.Estimate(in)
		assert.Equal(t, ChunkCount(estimate.PayloadSize), len(outputs), "input %q", in)
		assert.Equal(t, int64(len(outputs))*546, estimate.TotalCost)
		assert.Equal(t, in, codec.Decode(AsOutputs(outputs)))
	}
}

func TestDustValueInvariant(t *testing.T) {
	codec, err := New(Options{Network: types.NetworkContext{DustValue: 1000}})
	require.NoError(t, err)

	text := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	outputs, err := codec.Encode(text)
	require.NoError(t, err)
	require.NotEmpty(t, outputs)
	for _, out := range outputs {
		assert.Equal(t, int64(1000), out.Value)
	}
	assert.Equal(t, int64(len(outputs))*1000, codec.Estimate(text).TotalCost)
}

func TestClassification(t *testing.T) {
	codec := newTestCodec(t)

	outputs, err := codec.Encode("Hello Scash DAP")
	require.NoError(t, err)
	assert.True(t, codec.IsProtocolAddress(outputs[0].Address))

	// 普通 P2WSH：32 字节见证程序但协议头不匹配
	plain, err := EncodeChunkAddress(Chunk{0x01, 0x02, 0x03, 0x04}, "scash")
	require.NoError(t, err)
	assert.False(t, codec.IsProtocolAddress(plain))
	_, ok := codec.ProtocolOf(plain)
	assert.False(t, ok)

	assert.False(t, codec.IsProtocolAddress(""))
	assert.False(t, codec.IsProtocolAddress("not-an-address"))

	// 其他网络前缀
	foreign, err := EncodeChunkAddress(NewChunk(ProtocolRAW.Magic, []byte("x")), "bcrt")
	require.NoError(t, err)
	assert.False(t, codec.IsProtocolAddress(foreign))
}

func TestDecodeMixedShapes(t *testing.T) {
	codec := newTestCodec(t)
	text := "Scash-DAP stores text inside transaction outputs, one 28-byte segment per output."
	outputs := chunkOutputs(t, ProtocolRAW, []byte(text))
	require.Len(t, outputs, 3)

	raw, err := json.Marshal(map[string]any{
		"value":        0.00000546,
		"n":            4,
		"scriptPubKey": map[string]any{"address": outputs[2].Address},
	})
	require.NoError(t, err)

	unrelated, err := EncodeChunkAddress(Chunk{0x51}, "scash")
	require.NoError(t, err)

	mixed := []any{
		outputs[0].Address,
		map[string]any{"scriptPubKey": map[string]any{"type": "nulldata", "hex": "6a"}},
		types.TxOutput{ScriptPubKey: &types.ScriptPubKey{Addresses: []string{outputs[1].Address}}},
		unrelated,
		"garbage",
		42,
		json.RawMessage(raw),
		map[string]any{"address": "scash1qqqqq"},
	}
	assert.Equal(t, text, codec.Decode(mixed))

	result := codec.Scan(mixed)
	assert.Equal(t, 3, result.Chunks)
	assert.Equal(t, 5, result.Skipped)
	assert.False(t, result.Compressed)
	assert.Equal(t, 3, result.PerProtocol[types.ProtocolRAW])
}

func TestDecodeStripsTrailingZeros(t *testing.T) {
	codec := newTestCodec(t)
	outputs := chunkOutputs(t, ProtocolRAW, []byte("abc\x00\x00"))
	assert.Equal(t, "abc", codec.Decode(AsOutputs(outputs)))
}

func TestDecodeInflateFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	codec, err := New(Options{Logger: logimpl.NewFromZap(zap.New(core))})
	require.NoError(t, err)

	outputs := chunkOutputs(t, ProtocolZIP, []byte("definitely not zlib"))
	assert.Equal(t, "", codec.Decode(AsOutputs(outputs)))
	assert.Equal(t, 1, logs.FilterMessageSnippet("解压失败").Len())
}

func TestScanReportsMixedProtocols(t *testing.T) {
	codec := newTestCodec(t)
	outputs := append(
		chunkOutputs(t, ProtocolRAW, []byte("plain")),
		chunkOutputs(t, ProtocolZIP, []byte("packed"))...,
	)

	result := codec.Scan(AsOutputs(outputs))
	assert.True(t, result.Mixed)
	assert.True(t, result.Compressed)
	assert.Equal(t, 2, result.Chunks)
	assert.Equal(t, 1, result.PerProtocol[types.ProtocolRAW])
	assert.Equal(t, 1, result.PerProtocol[types.ProtocolZIP])
}

func TestCodecWithNetworkParams(t *testing.T) {
	params := network.MustGet(network.Regtest)
	codec, err := NewFromConfig(params, nil, nil)
	require.NoError(t, err)

	outputs, err := codec.Encode("regtest payload")
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.True(t, strings.HasPrefix(outputs[0].Address, "bcrt1"))
	assert.Equal(t, "regtest payload", codec.Decode(AsOutputs(outputs)))

	// 主网编解码器不识别 regtest 地址
	assert.Equal(t, "", newTestCodec(t).Decode(AsOutputs(outputs)))
}

func TestConcurrentUse(t *testing.T) {
	codec := newTestCodec(t)
	texts := []string{"Hello Scash DAP", strings.Repeat("ScashDAP ", 100), "并发安全"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			outputs, err := codec.Encode(text)
			assert.NoError(t, err)
			assert.Equal(t, text, codec.Decode(AsOutputs(outputs)))
		}(texts[i%len(texts)])
	}
	wg.Wait()
}

func TestDecodeRejectsOversizedInflate(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	codec, err := New(Options{MaxInflateSize: 4096, Logger: logimpl.NewFromZap(zap.New(core))})
	require.NoError(t, err)

	fits, err := deflate([]byte(strings.Repeat("a", 4096)), 9)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 4096), codec.Decode(AsOutputs(chunkOutputs(t, ProtocolZIP, fits))))

	// 少量数据块展开为远超上限的载荷
	bomb, err := deflate(make([]byte, 8*DefaultMaxInflateSize), 9)
	require.NoError(t, err)
	outputs := AsOutputs(chunkOutputs(t, ProtocolZIP, bomb))

	assert.Equal(t, "", codec.Decode(outputs))
	assert.Equal(t, "", newTestCodec(t).Decode(outputs))
	assert.Equal(t, 1, logs.FilterMessageSnippet("解压失败").Len())
}

func TestDecodeScanMatchesDecode(t *testing.T) {
	codec := newTestCodec(t)
	for _, text := range []string{"", "Hello Scash DAP", strings.Repeat("ScashDAP ", 100)} {
		outputs, err := codec.Encode(text)
		require.NoError(t, err)
		items := append([]any{"not an address", nil}, AsOutputs(outputs)...)

		scan := codec.Scan(items)
		assert.Equal(t, 2, scan.Skipped)
		assert.Equal(t, len(outputs), scan.Chunks)
		assert.Equal(t, text, codec.DecodeScan(scan))
		assert.Equal(t, codec.Decode(items), codec.DecodeScan(scan))
	}
}
