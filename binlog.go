// Package binlog provides a high-throughput binary logging engine for
// applications that emit structured diagnostic records on a hot path.
//
// Producing a record costs microseconds and performs no heap allocation when
// the arguments are scalars or static string references, and the resulting
// log stream is an order of magnitude smaller than rendered text. Two design
// decisions make that possible:
//
//   - Format strings are interned once in a process-wide registry and
//     referenced by a 16-bit identifier; record payloads carry only the
//     argument values.
//   - Record timestamps are 16-bit deltas against rolling base records, so
//     the common record header is five bytes.
//
// # Core Components
//
//   - logger.Logger: double-buffered binary encoder; hands filled buffers to
//     a pluggable handler
//   - logger.Reader: offline decoder reconstructing absolute timestamps and
//     format strings
//   - registry: process-wide format-string interning with persistable
//     snapshots
//   - clock: monotonic tick sampling and base/delta bookkeeping
//   - handler: io.Writer appending, background hand-off, chunk compression
//     (Zstd, S2, LZ4)
//
// # Basic Usage
//
// Logging to a file:
//
//	import (
//	    "github.com/arloliu/binlog"
//	    "github.com/arloliu/binlog/logger"
//	)
//
//	var fmtRequest = binlog.NewFormat("handled {} in {} µs status={}")
//
//	file, _ := os.Create("app.binlog")
//	lg, _ := binlog.NewLogger(16*1024, handler.NewWriter(file))
//
//	lg.Logf(fmtRequest, logger.String(path), logger.Int64(elapsed), logger.Uint64(status))
//	lg.Flush()
//
// A log stream is readable only together with a snapshot of the registry that
// produced it; persist the snapshot next to the stream:
//
//	snap, _ := binlog.SnapshotBytes()
//	os.WriteFile("app.binlog.formats", snap, 0o644)
//
// Reading back:
//
//	snap, _ := registry.ReadSnapshot(snapData)
//	reader := binlog.NewReader(logData, snap)
//	for entry := range reader.All() {
//	    fmt.Println(entry.Render())
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the logger and
// registry packages, simplifying the most common use cases. For advanced usage
// and fine-grained control, use those packages directly.
package binlog

import (
	"github.com/arloliu/binlog/logger"
	"github.com/arloliu/binlog/registry"
)

// DefaultCapacity is the buffer capacity NewDefaultLogger uses. 16KiB holds a
// few hundred typical records per hand-off, balancing hand-off frequency
// against the memory pinned by the two buffers.
const DefaultCapacity = 16 * 1024

// NewLogger creates a logger with two buffers of the given capacity, handing
// filled buffers to h.
//
// Parameters:
//   - capacity: Per-buffer capacity in bytes; bounds the largest record
//   - h: Downstream buffer handler (see the handler package)
//   - opts: Optional configuration (see logger.Option)
func NewLogger(capacity int, h logger.Handler, opts ...logger.Option) (*logger.Logger, error) {
	return logger.New(capacity, h, opts...)
}

// NewDefaultLogger creates a logger with the recommended default capacity.
func NewDefaultLogger(h logger.Handler) (*logger.Logger, error) {
	return logger.New(DefaultCapacity, h)
}

// NewFormat creates a call-site format handle bound to the process-wide
// registry. Declare one package-level handle per logging call site; the
// format string is interned on first use and the identifier cached.
func NewFormat(s string) *registry.Format {
	return registry.NewFormat(s)
}

// NewReader creates a reader over a raw record stream, resolving format
// identifiers through resolver — a registry.Snapshot loaded from the
// producing process, or registry.Default() when decoding in-process.
func NewReader(data []byte, resolver registry.Resolver) *logger.Reader {
	return logger.NewReader(data, resolver)
}

// Snapshot returns a stable copy of the process-wide registry, sufficient to
// decode any stream produced by this process so far.
func Snapshot() registry.Snapshot {
	return registry.Default().Snapshot()
}

// SnapshotBytes serializes the process-wide registry snapshot into its
// checksummed file format.
func SnapshotBytes() ([]byte, error) {
	return registry.Default().Snapshot().MarshalBinary()
}
