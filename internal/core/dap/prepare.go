package dap

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	logInterface "github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
)

const (
	// DefaultCompressionLevel 默认 zlib 压缩级别
	DefaultCompressionLevel = 6
	// DefaultMaxInflateSize 解压结果上限（字节）
	DefaultMaxInflateSize = 1 << 20
)

// ErrInflateTooLarge 解压结果超过上限
var ErrInflateTooLarge = errors.New("inflated payload exceeds limit")

// Prepared 预处理后的载荷
type Prepared struct {
	Payload      []byte
	Protocol     Protocol
	OriginalSize int
}

// Preparer 载荷预处理器：决定是否压缩
type Preparer struct {
	raw    Protocol
	zip    Protocol
	level  int
	logger logInterface.Logger
}

// NewPreparer 创建预处理器
func NewPreparer(raw, zip Protocol, level int, logger logInterface.Logger) *Preparer {
	return &Preparer{raw: raw, zip: zip, level: level, logger: logger}
}

// Prepare 尝试压缩载荷，只有压缩后严格变小才采用压缩协议
// 压缩失败不是致命错误，回退为原文模式
func (p *Preparer) Prepare(raw []byte) Prepared {
	prepared := Prepared{Payload: raw, Protocol: p.raw, OriginalSize: len(raw)}

	compressed, err := deflate(raw, p.level)
	if err != nil {
		p.logger.Warnf("压缩异常，回退到原文模式: %v", err)
		return prepared
	}

	if len(compressed) < len(raw) {
		p.logger.Debugf("压缩生效: %d -> %d bytes", len(raw), len(compressed))
		prepared.Payload = compressed
		prepared.Protocol = p.zip
		return prepared
	}

	p.logger.Debugf("保持原文: 压缩未减小体积 (%d -> %d bytes)", len(raw), len(compressed))
	return prepared
}

// deflate 生成带 RFC 1950 头与 Adler-32 校验的 zlib 数据
func deflate(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("create zlib writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("zlib write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib close: %w", err)
	}
	return buf.Bytes(), nil
}

// inflate 解压 zlib 数据，结果超过 max 字节时返回 ErrInflateTooLarge
func inflate(data []byte, max int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, int64(max)+1))
	if err != nil {
		return nil, fmt.Errorf("zlib read: %w", err)
	}
	if len(out) > max {
		return nil, fmt.Errorf("%w: %d bytes", ErrInflateTooLarge, max)
	}
	return out, nil
}
