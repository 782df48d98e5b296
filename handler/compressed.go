package handler

import (
	"fmt"

	"github.com/arloliu/binlog/compress"
	"github.com/arloliu/binlog/endian"
	"github.com/arloliu/binlog/errs"
	"github.com/arloliu/binlog/format"
	"github.com/arloliu/binlog/logger"
)

// Chunk frame layout, little-endian:
//
//	u32 raw length
//	u32 compressed length
//	compressed bytes
//
// Each hand-off becomes one frame, so a compressed log file is a frame
// sequence that ExpandStream turns back into the raw record stream.
const frameHeaderSize = 4 + 4

// Compressed compresses each handed-off buffer as an independent frame and
// forwards the frame to the next handler.
//
// Per-chunk framing keeps the hand-off contract intact (every Handle call
// still completes before returning) and each frame decompresses independently
// of the others. ExpandStream stops at the first truncated or corrupt frame
// and returns only the error, not the frames decoded before it.
type Compressed struct {
	next   logger.Handler
	codec  compress.Codec
	engine endian.EndianEngine
	frame  []byte
}

var _ logger.Handler = (*Compressed)(nil)

// NewCompressed creates a compressing handler forwarding frames to next.
func NewCompressed(next logger.Handler, compression format.CompressionType) (*Compressed, error) {
	codec, err := compress.CreateCodec(compression, "chunk")
	if err != nil {
		return nil, err
	}

	return &Compressed{
		next:   next,
		codec:  codec,
		engine: endian.GetLittleEndianEngine(),
	}, nil
}

// Handle compresses buf into a frame and forwards it.
func (h *Compressed) Handle(buf []byte) error {
	compressed, err := h.codec.Compress(buf)
	if err != nil {
		return fmt.Errorf("failed to compress chunk: %w", err)
	}

	// Reuse the frame buffer across hand-offs; the next handler must not
	// retain it, same contract the logger gives us.
	h.frame = h.frame[:0]
	h.frame = h.engine.AppendUint32(h.frame, uint32(len(buf)))
	h.frame = h.engine.AppendUint32(h.frame, uint32(len(compressed)))
	h.frame = append(h.frame, compressed...)

	return h.next.Handle(h.frame)
}

// ExpandStream reverses the framing produced by Compressed: it decompresses a
// concatenated frame sequence back into the raw record stream a Reader can
// consume.
func ExpandStream(data []byte, compression format.CompressionType) ([]byte, error) {
	codec, err := compress.CreateCodec(compression, "chunk")
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()

	var out []byte
	pos := 0
	for pos < len(data) {
		if len(data)-pos < frameHeaderSize {
			return nil, fmt.Errorf("%w: truncated frame header at offset %d", errs.ErrMalformedInput, pos)
		}

		rawLen := int(engine.Uint32(data[pos : pos+4]))
		compLen := int(engine.Uint32(data[pos+4 : pos+8]))
		pos += frameHeaderSize

		if len(data)-pos < compLen {
			return nil, fmt.Errorf("%w: frame shorter than %d bytes at offset %d", errs.ErrMalformedInput, compLen, pos)
		}

		raw, err := codec.Decompress(data[pos : pos+compLen])
		if err != nil {
			return nil, fmt.Errorf("failed to decompress frame at offset %d: %w", pos, err)
		}
		if len(raw) != rawLen {
			return nil, fmt.Errorf("%w: frame at offset %d expanded to %d bytes, header says %d",
				errs.ErrMalformedInput, pos, len(raw), rawLen)
		}

		out = append(out, raw...)
		pos += compLen
	}

	return out, nil
}
