package dap

// Chunk 链上最小数据单元：协议头 + 载荷片段，右侧补零
type Chunk [ChunkSize]byte

// NewChunk 构造数据块，segment 超过 28 字节的部分会被截断
func NewChunk(magic [MagicSize]byte, segment []byte) Chunk {
	var c Chunk
	copy(c[:MagicSize], magic[:])
	copy(c[MagicSize:], segment)
	return c
}

// Magic 返回协议头
func (c Chunk) Magic() [MagicSize]byte {
	var m [MagicSize]byte
	copy(m[:], c[:MagicSize])
	return m
}

// Payload 返回载荷部分（包含补零）
func (c Chunk) Payload() []byte {
	out := make([]byte, ChunkPayloadSize)
	copy(out, c[MagicSize:])
	return out
}

// SplitChunks 按 28 字节步长切分载荷
// 空载荷不产生数据块；长度恰为 28 的倍数时末尾不会多出空块
func SplitChunks(magic [MagicSize]byte, payload []byte) []Chunk {
	chunks := make([]Chunk, 0, ChunkCount(len(payload)))
	for i := 0; i < len(payload); i += ChunkPayloadSize {
		end := i + ChunkPayloadSize
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, NewChunk(magic, payload[i:end]))
	}
	return chunks
}

// ChunkCount 计算给定长度载荷所需的数据块数量，即 ceil(n / 28)
func ChunkCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + ChunkPayloadSize - 1) / ChunkPayloadSize
}
