package compress

// ZstdCompressor compresses chunks with Zstandard, trading speed for the best
// compression ratio of the supported codecs.
//
// Good for archival log files and network shipping where bandwidth matters
// more than hand-off latency. Two implementations exist behind build tags: a
// cgo binding when cgo is available and a pure-Go fallback otherwise.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
