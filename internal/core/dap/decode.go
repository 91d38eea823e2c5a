package dap

import (
	"github.com/scashdap/v1/pkg/types"
)

// ScanResult 扫描交易输出的结果
type ScanResult struct {
	// Data 重组并去除末尾补零后的载荷（未解压）
	Data []byte
	// Compressed 任一匹配的数据块使用了压缩协议
	Compressed bool
	// Mixed 同一交易中同时出现压缩与非压缩协议的数据块
	Mixed bool
	// Chunks 匹配到的数据块数量
	Chunks int
	// Skipped 无法提取地址、解码失败或协议头不匹配的输出数量
	Skipped int
	// PerProtocol 各协议匹配到的数据块数量
	PerProtocol map[types.ProtocolName]int
}

// Scan 按输出顺序扫描并重组数据块
func (c *Codec) Scan(outputs []any) ScanResult {
	result := ScanResult{PerProtocol: make(map[types.ProtocolName]int)}
	var sawRaw bool

	addrs := NormalizeOutputs(outputs)
	result.Skipped = len(outputs) - len(addrs)

	for _, addr := range addrs {
		chunk, ok := DecodeChunkAddress(addr, c.network.Bech32HRP)
		if !ok {
			result.Skipped++
			continue
		}
		p, ok := c.registry.Match(chunk[:])
		if !ok {
			result.Skipped++
			continue
		}

		result.Data = append(result.Data, chunk[MagicSize:]...)
		result.Chunks++
		result.PerProtocol[p.Name]++
		if p.Compressed {
			result.Compressed = true
		} else {
			sawRaw = true
		}
	}

	result.Mixed = result.Compressed && sawRaw
	result.Data = trimTrailingZeros(result.Data)
	return result
}

// Decode 从交易输出中还原文本
// 没有数据块、解压失败时返回空字符串
func (c *Codec) Decode(outputs []any) string {
	return c.DecodeScan(c.Scan(outputs))
}

// DecodeScan 将扫描结果还原为文本，已经调用过 Scan 的调用方用它避免重复扫描
func (c *Codec) DecodeScan(result ScanResult) string {
	if result.Chunks == 0 {
		return ""
	}
	if result.Mixed {
		c.logger.Warnf("交易同时包含压缩与原文数据块，按压缩数据处理: %v", result.PerProtocol)
	}
	if !result.Compressed {
		return string(result.Data)
	}

	plain, err := inflate(result.Data, c.maxInflate)
	if err != nil {
		c.logger.Warnf("解压失败: chunks=%d bytes=%d err=%v", result.Chunks, len(result.Data), err)
		return ""
	}
	return string(plain)
}

// trimTrailingZeros 去除末尾的 0x00 填充
// 载荷本身以 0x00 结尾时同样会被去除
func trimTrailingZeros(data []byte) []byte {
	end := len(data)
	for end > 0 && data[end-1] == 0 {
		end--
	}
	return data[:end]
}
