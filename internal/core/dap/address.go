package dap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// WitnessVersion 数据地址使用的见证版本（P2WSH）
const WitnessVersion = 0

// ErrInvalidHRP 地址前缀无法用于 bech32 编码
var ErrInvalidHRP = errors.New("invalid bech32 human-readable part")

// EncodeChunkAddress 将 32 字节数据块直接作为见证程序编码为 bech32 地址
// 不做任何哈希：没有已知脚本能对应任意 32 字节值，输出因此不可花费
func EncodeChunkAddress(chunk Chunk, hrp string) (string, error) {
	words, err := bech32.ConvertBits(chunk[:], 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert chunk bits: %w", err)
	}

	data := make([]byte, 0, len(words)+1)
	data = append(data, WitnessVersion)
	data = append(data, words...)

	addr, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidHRP, hrp, err)
	}
	return addr, nil
}

// DecodeChunkAddress 将地址解码为 32 字节数据块
// 以下情况返回 false：空地址、前缀不符、校验和错误或为 bech32m、载荷长度不是 32 字节
// 绝大多数交易输出都不是数据地址，因此失败是正常结果而非错误
func DecodeChunkAddress(address, hrp string) (Chunk, bool) {
	if address == "" || hrp == "" {
		return Chunk{}, false
	}
	if !strings.HasPrefix(strings.ToLower(address), hrp) {
		return Chunk{}, false
	}

	// bech32m 校验和的地址不是数据地址
	decodedHRP, data, version, err := bech32.DecodeGeneric(address)
	if err != nil || version != bech32.Version0 || decodedHRP != hrp || len(data) < 1 {
		return Chunk{}, false
	}

	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil || len(program) != ChunkSize {
		return Chunk{}, false
	}

	var c Chunk
	copy(c[:], program)
	return c, true
}
