package dap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkCount(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0},
		{1, 1},
		{27, 1},
		{28, 1},
		{29, 2},
		{56, 2},
		{57, 3},
		{900, 33},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ChunkCount(tt.n), "n=%d", tt.n)
	}
}

func TestSplitChunks(t *testing.T) {
	magic := ProtocolRAW.Magic

	t.Run("空载荷", func(t *testing.T) {
		assert.Empty(t, SplitChunks(magic, nil))
	})

	t.Run("末尾补零", func(t *testing.T) {
		payload := bytes.Repeat([]byte{'x'}, 30)
		chunks := SplitChunks(magic, payload)
		require.Len(t, chunks, 2)

		assert.Equal(t, magic, chunks[0].Magic())
		assert.Equal(t, payload[:28], chunks[0].Payload())

		last := chunks[1].Payload()
		assert.Equal(t, []byte("xx"), last[:2])
		assert.Equal(t, make([]byte, 26), last[2:])
	})

	t.Run("整倍数不产生空块", func(t *testing.T) {
		chunks := SplitChunks(magic, bytes.Repeat([]byte{'y'}, 56))
		require.Len(t, chunks, 2)
		for _, c := range chunks {
			assert.Equal(t, bytes.Repeat([]byte{'y'}, 28), c.Payload())
		}
	})
}

func TestNewChunkTruncates(t *testing.T) {
	c := NewChunk(ProtocolZIP.Magic, bytes.Repeat([]byte{1}, 40))
	assert.Equal(t, ProtocolZIP.Magic[:], c[:MagicSize])
	assert.Equal(t, bytes.Repeat([]byte{1}, ChunkPayloadSize), c.Payload())
}
