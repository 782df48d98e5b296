// Package compress provides the compression codecs used by chunk-compressing
// log handlers.
//
// Log chunks are already an order of magnitude smaller than rendered text, but
// record headers and repeated value tags still compress well; delta-heavy
// streams typically shrink another 2-5x under any of the supported codecs.
package compress

import (
	"fmt"

	"github.com/arloliu/binlog/format"
)

// Compressor compresses one log chunk.
//
// The input is a complete buffer handed off by a logger. The returned slice is
// newly allocated and owned by the caller; the input slice is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor for one chunk.
//
// The input must have been produced by the matching algorithm; corrupted or
// mismatched data returns an error. The returned slice is newly allocated and
// owned by the caller.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the specified
// compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}
