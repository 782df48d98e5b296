// Package errs defines the sentinel errors returned by the binlog packages.
//
// Callers match errors with errors.Is; use sites wrap these sentinels with
// fmt.Errorf("%w: ...") to attach context.
package errs

import "errors"

// Encoder errors.
var (
	// ErrInvalidCapacity is returned when a logger is constructed with a
	// capacity too small to hold a base record followed by an empty delta record.
	ErrInvalidCapacity = errors.New("invalid buffer capacity")

	// ErrRecordTooLarge is returned when a single record (including the base
	// record a fresh buffer must open with) cannot fit in an empty buffer.
	ErrRecordTooLarge = errors.New("record exceeds buffer capacity")

	// ErrHandlerFailure is returned when the downstream handler rejects a buffer.
	ErrHandlerFailure = errors.New("handler rejected buffer")

	// ErrLoggerPoisoned is returned by Log and Flush after a handler failure,
	// until Reset is called.
	ErrLoggerPoisoned = errors.New("logger poisoned by handler failure")

	// ErrNilHandler is returned when a logger is constructed without a handler.
	ErrNilHandler = errors.New("nil buffer handler")

	// ErrArgumentCountMismatch is returned by Logf when the argument count does
	// not match the format string's placeholder count.
	ErrArgumentCountMismatch = errors.New("argument count mismatch")
)

// Registry errors.
var (
	// ErrRegistryExhausted is returned when the 16-bit identifier space
	// (65536 entries) is used up.
	ErrRegistryExhausted = errors.New("format registry exhausted")

	// ErrInvalidFormatString is returned when an empty format string is interned.
	ErrInvalidFormatString = errors.New("invalid format string")

	// ErrInvalidMagicNumber is returned when snapshot data does not start with
	// the snapshot magic number.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrChecksumMismatch is returned when a snapshot's xxHash64 trailer does
	// not match its payload.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")

	// ErrInvalidSnapshotPayload is returned when snapshot data is truncated or
	// structurally invalid.
	ErrInvalidSnapshotPayload = errors.New("invalid snapshot payload")
)

// Reader errors.
var (
	// ErrMalformedInput is returned when the input stream is truncated or
	// contains an unknown record or value tag. The error is terminal.
	ErrMalformedInput = errors.New("malformed log input")

	// ErrMissingBase is returned when a delta record appears before any base
	// record has been observed.
	ErrMissingBase = errors.New("delta record before base record")

	// ErrUnresolvedFormat is returned when a record's format identifier is not
	// present in the snapshot. The payload length is implied by the format
	// string, so the record cannot be skipped and the error is terminal.
	ErrUnresolvedFormat = errors.New("unresolved format identifier")
)
