package logger

import (
	"fmt"
	"iter"
	"strings"

	"github.com/arloliu/binlog/endian"
	"github.com/arloliu/binlog/errs"
	"github.com/arloliu/binlog/format"
	"github.com/arloliu/binlog/registry"
	"github.com/arloliu/binlog/section"
)

// Reader iterates the records encoded in a byte sequence, reconstructing
// absolute timestamps and resolving format identifiers against a registry
// snapshot.
//
// Base records are consumed transparently: they update the reader's timestamp
// base and are not surfaced as entries. Decoding is a single linear pass; the
// only per-record allocations are the returned Entry, its argument slice and
// any dynamic string arguments materialized as owned strings.
//
// Note: The Reader is NOT thread-safe. Each reader instance should be used by
// a single goroutine at a time.
type Reader struct {
	data     []byte
	resolver registry.Resolver
	engine   endian.EndianEngine

	pos     int
	base    uint64
	hasBase bool
	err     error
}

// NewReader creates a Reader over data, resolving format identifiers through
// resolver — typically a registry.Snapshot from the producing process, or the
// live *registry.Registry when decoding in-process.
func NewReader(data []byte, resolver registry.Resolver) *Reader {
	return &Reader{
		data:     data,
		resolver: resolver,
		engine:   endian.GetLittleEndianEngine(),
	}
}

// Next returns the next decoded entry.
//
// It returns (nil, nil) when the input is cleanly exhausted. Malformed input,
// a delta record before any base record, or an unresolvable format identifier
// are terminal: Next returns the error and every subsequent call returns the
// same error.
func (r *Reader) Next() (*Entry, error) {
	if r.err != nil {
		return nil, r.err
	}

	for {
		if r.pos >= len(r.data) {
			return nil, nil
		}

		hdr, ok := section.ReadRecordHeader(r.data[r.pos:], r.engine)
		if !ok {
			return nil, r.fail(fmt.Errorf("%w: truncated record header at offset %d", errs.ErrMalformedInput, r.pos))
		}

		switch hdr.Type {
		case format.RecordBase:
			if len(r.data)-r.pos < section.BaseRecordSize {
				return nil, r.fail(fmt.Errorf("%w: truncated base record at offset %d", errs.ErrMalformedInput, r.pos))
			}
			r.base = r.engine.Uint64(r.data[r.pos+section.RecordHeaderSize : r.pos+section.BaseRecordSize])
			r.hasBase = true
			r.pos += section.BaseRecordSize

		case format.RecordDelta:
			return r.readDelta(hdr)

		default:
			return nil, r.fail(fmt.Errorf("%w: unknown record type 0x%02x at offset %d", errs.ErrMalformedInput, byte(hdr.Type), r.pos))
		}
	}
}

// readDelta decodes the delta record starting at the reader's cursor.
func (r *Reader) readDelta(hdr section.RecordHeader) (*Entry, error) {
	if !r.hasBase {
		return nil, r.fail(fmt.Errorf("%w: at offset %d", errs.ErrMissingBase, r.pos))
	}

	formatStr, ok := r.resolver.Lookup(hdr.FormatID)
	if !ok {
		// The payload length is implied by the format string, so an
		// unresolved identifier makes the rest of the stream unreadable.
		return nil, r.fail(fmt.Errorf("%w: id %d at offset %d", errs.ErrUnresolvedFormat, hdr.FormatID, r.pos))
	}

	pos := r.pos + section.RecordHeaderSize
	argCount := strings.Count(formatStr, "{}")

	var args []Value
	if argCount > 0 {
		args = make([]Value, 0, argCount)
		for i := 0; i < argCount; i++ {
			val, n, err := decodeValue(r.data[pos:], r.engine, r.resolver)
			if err != nil {
				return nil, r.fail(fmt.Errorf("argument %d of %q at offset %d: %w", i, formatStr, pos, err))
			}
			args = append(args, val)
			pos += n
		}
	}

	r.pos = pos

	return &Entry{
		Timestamp: r.base + uint64(hdr.Rel),
		FormatID:  hdr.FormatID,
		Format:    formatStr,
		Args:      args,
	}, nil
}

// All returns an iterator over the remaining entries.
//
// Iteration stops at the end of input or on the first decode error; check Err
// after the loop to distinguish the two.
//
//	reader := logger.NewReader(data, snapshot)
//	for entry := range reader.All() {
//	    fmt.Println(entry.Render())
//	}
//	if err := reader.Err(); err != nil {
//	    return err
//	}
func (r *Reader) All() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for {
			entry, err := r.Next()
			if err != nil || entry == nil {
				return
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// Err returns the terminal decode error, or nil if none occurred.
func (r *Reader) Err() error {
	return r.err
}

// fail records err as the reader's terminal condition.
func (r *Reader) fail(err error) error {
	r.err = err

	return err
}
