package logger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/binlog/endian"
	"github.com/arloliu/binlog/errs"
	"github.com/arloliu/binlog/registry"
	"github.com/arloliu/binlog/section"
)

var testEngine = endian.GetLittleEndianEngine()

// appendBase appends a base record carrying ts to stream.
func appendBase(stream []byte, ts uint64) []byte {
	var rec [section.BaseRecordSize]byte
	section.PutBaseRecord(rec[:], testEngine, ts)

	return append(stream, rec[:]...)
}

// appendDelta appends a delta record header to stream.
func appendDelta(stream []byte, rel uint16, formatID uint16) []byte {
	var rec [section.RecordHeaderSize]byte
	section.PutDeltaHeader(rec[:], testEngine, rel, formatID)

	return append(stream, rec[:]...)
}

func TestReader_EmptyInput(t *testing.T) {
	reader := NewReader(nil, registry.Snapshot{})

	entry, err := reader.Next()
	require.NoError(t, err)
	require.Nil(t, entry)
	require.NoError(t, reader.Err())
}

func TestReader_BaseOnlyStream(t *testing.T) {
	stream := appendBase(nil, 1000)
	stream = appendBase(stream, 2000)

	reader := NewReader(stream, registry.Snapshot{})

	entry, err := reader.Next()
	require.NoError(t, err)
	require.Nil(t, entry)
	require.NoError(t, reader.Err())
}

func TestReader_MissingBase(t *testing.T) {
	stream := appendDelta(nil, 10, 0)

	reader := NewReader(stream, registry.Snapshot{"no args"})

	_, err := reader.Next()
	require.ErrorIs(t, err, errs.ErrMissingBase)
}

func TestReader_UnresolvedFormat(t *testing.T) {
	stream := appendBase(nil, 1000)
	stream = appendDelta(stream, 10, 7)

	reader := NewReader(stream, registry.Snapshot{"only id zero"})

	_, err := reader.Next()
	require.ErrorIs(t, err, errs.ErrUnresolvedFormat)
}

func TestReader_TruncatedHeader(t *testing.T) {
	stream := appendBase(nil, 1000)
	stream = append(stream, 0x00, 0x01) // two bytes of a five-byte header

	reader := NewReader(stream, registry.Snapshot{"no args"})

	_, err := reader.Next()
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestReader_TruncatedBaseRecord(t *testing.T) {
	full := appendBase(nil, 1000)

	reader := NewReader(full[:8], registry.Snapshot{})

	_, err := reader.Next()
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestReader_UnknownRecordType(t *testing.T) {
	stream := appendBase(nil, 1000)
	stream = append(stream, 0x07, 0, 0, 0, 0)

	reader := NewReader(stream, registry.Snapshot{})

	_, err := reader.Next()
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestReader_UnknownValueTag(t *testing.T) {
	stream := appendBase(nil, 1000)
	stream = appendDelta(stream, 0, 0)
	stream = append(stream, 0xEE) // bogus value tag

	reader := NewReader(stream, registry.Snapshot{"v={}"})

	_, err := reader.Next()
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestReader_TruncatedValuePayload(t *testing.T) {
	stream := appendBase(nil, 1000)
	stream = appendDelta(stream, 0, 0)
	// A dynamic string claiming 100 bytes with only 3 present.
	stream = append(stream, 0x00, 100, 0, 'a', 'b', 'c')

	reader := NewReader(stream, registry.Snapshot{"v={}"})

	_, err := reader.Next()
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestReader_ErrorIsTerminal(t *testing.T) {
	stream := appendDelta(nil, 10, 0)

	reader := NewReader(stream, registry.Snapshot{"no args"})

	_, err := reader.Next()
	require.ErrorIs(t, err, errs.ErrMissingBase)

	// Subsequent calls keep failing with the same error.
	_, again := reader.Next()
	require.Equal(t, err, again)
	require.Equal(t, err, reader.Err())
}

func TestReader_All_StopsOnError(t *testing.T) {
	stream := appendBase(nil, 1000)
	stream = appendDelta(stream, 5, 0)
	stream = appendDelta(stream, 10, 9) // unresolved id

	reader := NewReader(stream, registry.Snapshot{"ok"})

	count := 0
	for range reader.All() {
		count++
	}
	require.Equal(t, 1, count)
	require.ErrorIs(t, reader.Err(), errs.ErrUnresolvedFormat)
}

func TestReader_RebaseMidStream(t *testing.T) {
	stream := appendBase(nil, 1000)
	stream = appendDelta(stream, 50, 0)
	stream = appendBase(stream, 90000)
	stream = appendDelta(stream, 3, 0)

	reader := NewReader(stream, registry.Snapshot{"tick"})

	first, err := reader.Next()
	require.NoError(t, err)
	require.Equal(t, uint64(1050), first.Timestamp)

	second, err := reader.Next()
	require.NoError(t, err)
	require.Equal(t, uint64(90003), second.Timestamp)
}

func TestEntry_Render_MissingArgument(t *testing.T) {
	entry := &Entry{
		Format: "a={} b={}",
		Args:   []Value{Int64(1)},
	}

	require.Equal(t, "a=1 b={MISSING}", entry.Render())
}

func TestEntry_Render_NoPlaceholders(t *testing.T) {
	entry := &Entry{Format: "plain message"}

	require.Equal(t, "plain message", entry.Render())
	require.Equal(t, "plain message", entry.String())
}
