// Package logger implements the record-production pipeline: a double-buffered
// binary encoder that serializes log records on the caller's goroutine with no
// heap allocation on the hot path, and the matching offline Reader.
//
// A Logger owns two fixed-capacity buffers. Records are appended to the active
// buffer; when a record does not fit, the filled buffer is handed to the
// downstream Handler and the standby buffer takes over. Timestamps are encoded
// as 16-bit deltas against base records (see the clock and section packages),
// and format strings are referenced by registry identifier, which is what
// keeps records an order of magnitude smaller than rendered text.
//
// Note: The Logger is NOT thread-safe. Each logger instance is owned and
// mutated by exactly one goroutine. Multiple loggers operate independently and
// share only the format-string registry.
package logger

import (
	"fmt"

	"github.com/arloliu/binlog/clock"
	"github.com/arloliu/binlog/endian"
	"github.com/arloliu/binlog/errs"
	"github.com/arloliu/binlog/internal/options"
	"github.com/arloliu/binlog/registry"
	"github.com/arloliu/binlog/section"
)

// MinCapacity is the smallest usable buffer capacity: a base record followed
// by a delta record with an empty payload.
const MinCapacity = section.BaseRecordSize + section.RecordHeaderSize

// Logger serializes log records into fixed-capacity buffers and drives a
// Handler with every filled buffer.
type Logger struct {
	engine  endian.EndianEngine
	handler Handler
	sample  func() uint64
	conv    clock.Converter

	bufs     [2][]byte
	active   int
	pos      int
	capacity int

	needBase bool
	poisoned bool
}

// Option configures a Logger.
type Option = options.Option[*Logger]

// WithSampler overrides the timestamp source. The function must return
// monotonically non-decreasing values; production loggers use clock.Sample.
// Mainly useful for deterministic tests and replay tooling.
func WithSampler(fn func() uint64) Option {
	return options.New(func(l *Logger) error {
		if fn == nil {
			return fmt.Errorf("nil sampler")
		}
		l.sample = fn

		return nil
	})
}

// New creates a Logger with two buffers of the given capacity, handing filled
// buffers to h.
//
// The capacity bounds the largest record: a record that does not fit in an
// empty buffer together with its base record is rejected with
// ErrRecordTooLarge. Choose a capacity that accommodates the largest message.
func New(capacity int, h Handler, opts ...Option) (*Logger, error) {
	if h == nil {
		return nil, errs.ErrNilHandler
	}

	if capacity < MinCapacity {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", errs.ErrInvalidCapacity, capacity, MinCapacity)
	}

	l := &Logger{
		engine:   endian.GetLittleEndianEngine(),
		handler:  h,
		sample:   clock.Sample,
		capacity: capacity,
	}
	l.bufs[0] = make([]byte, capacity)
	l.bufs[1] = make([]byte, capacity)

	if err := options.Apply(l, opts...); err != nil {
		return nil, err
	}

	return l, nil
}

// Log appends one record referencing the given format identifier.
//
// The record is written whole or not at all: on any error the active buffer is
// unchanged. When the record does not fit in the remaining capacity, the
// filled buffer is handed to the handler first and the record lands at the
// start of the fresh buffer, preceded by a base record.
//
// Log performs no heap allocation when all arguments are scalars or static
// references; dynamic string arguments copy their bytes into the buffer.
func (l *Logger) Log(formatID uint16, args ...Value) error {
	if l.poisoned {
		return errs.ErrLoggerPoisoned
	}

	recSize := section.RecordHeaderSize
	for _, arg := range args {
		recSize += arg.encodedSize()
	}

	// A fresh buffer always opens with a base record, so that is the
	// worst-case footprint a single record can require.
	if section.BaseRecordSize+recSize > l.capacity {
		return fmt.Errorf("%w: %d bytes, capacity %d", errs.ErrRecordTooLarge, recSize, l.capacity)
	}

	for {
		if l.needBase {
			l.conv.Reset()
			l.needBase = false
		}

		now := l.sample()
		delta, rebase := l.conv.Encode(now)

		total := recSize
		if rebase {
			total += section.BaseRecordSize
		}

		if total > l.capacity-l.pos {
			if err := l.rotate(); err != nil {
				return err
			}
			// Restart with a fresh sample: the new buffer opens with its
			// own base record so it decodes standalone.
			continue
		}

		buf := l.bufs[l.active]
		if rebase {
			l.pos += section.PutBaseRecord(buf[l.pos:], l.engine, now)
		}
		l.pos += section.PutDeltaHeader(buf[l.pos:], l.engine, delta, formatID)
		for _, arg := range args {
			l.pos += arg.put(buf[l.pos:], l.engine)
		}

		return nil
	}
}

// Logf appends one record for the given call-site format handle, interning the
// format string on first use.
//
// The argument count must match the format string's "{}" placeholder count;
// the payload length of a record is implied by that count, so a mismatch would
// produce an undecodable stream.
func (l *Logger) Logf(f *registry.Format, args ...Value) error {
	id, err := f.ID()
	if err != nil {
		return err
	}

	if len(args) != f.Placeholders() {
		return fmt.Errorf("%w: format %q has %d placeholders, got %d arguments",
			errs.ErrArgumentCountMismatch, f.String(), f.Placeholders(), len(args))
	}

	return l.Log(id, args...)
}

// Flush hands the active buffer to the handler if it holds any records and
// clears it. Safe to call repeatedly; an empty buffer produces no handler call.
func (l *Logger) Flush() error {
	if l.poisoned {
		return errs.ErrLoggerPoisoned
	}

	if l.pos == 0 {
		return nil
	}

	return l.rotate()
}

// Close flushes once. The logger remains usable afterwards; Close exists so a
// Logger satisfies io.Closer in tear-down paths.
func (l *Logger) Close() error {
	return l.Flush()
}

// Poisoned reports whether a handler failure has disabled the logger.
func (l *Logger) Poisoned() bool {
	return l.poisoned
}

// Reset clears both buffers, drops the timestamp base and revives a poisoned
// logger. Records buffered at the time of the handler failure are discarded.
func (l *Logger) Reset() {
	l.pos = 0
	l.poisoned = false
	l.needBase = false
	l.conv.Reset()
}

// rotate hands the active buffer to the handler and swaps buffers.
//
// The handed buffer is only valid during the Handle call; once the handler
// returns it becomes the standby buffer. A handler error poisons the logger.
func (l *Logger) rotate() error {
	if err := l.handler.Handle(l.bufs[l.active][:l.pos]); err != nil {
		l.poisoned = true

		return fmt.Errorf("%w: %w", errs.ErrHandlerFailure, err)
	}

	l.active ^= 1
	l.pos = 0
	l.needBase = true

	return nil
}
