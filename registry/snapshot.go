package registry

import (
	"fmt"
	"math"

	"github.com/arloliu/binlog/endian"
	"github.com/arloliu/binlog/errs"
	"github.com/arloliu/binlog/internal/hash"
)

// Snapshot file layout, little-endian:
//
//	u16 magic (0xEC10)
//	u32 entry count
//	count × (u16 length, raw string bytes)
//	u64 xxHash64 of all preceding bytes
//
// The trailer catches truncation and corruption before a stream is decoded
// against the wrong mapping.
const (
	// MagicSnapshotV1 is the version 1 magic number for the snapshot format.
	MagicSnapshotV1 = 0xEC10

	snapshotHeaderSize  = 2 + 4
	snapshotTrailerSize = 8

	// MaxFormatLength is the longest format string a snapshot entry can hold,
	// bounded by the uint16 length prefix.
	MaxFormatLength = math.MaxUint16
)

// MarshalBinary serializes the snapshot into the snapshot file format.
func (s Snapshot) MarshalBinary() ([]byte, error) {
	engine := endian.GetLittleEndianEngine()

	size := snapshotHeaderSize + snapshotTrailerSize
	for _, entry := range s {
		if len(entry) > MaxFormatLength {
			return nil, fmt.Errorf("%w: format string length %d exceeds %d",
				errs.ErrInvalidSnapshotPayload, len(entry), MaxFormatLength)
		}
		size += 2 + len(entry)
	}

	buf := make([]byte, 0, size)
	buf = engine.AppendUint16(buf, MagicSnapshotV1)
	buf = engine.AppendUint32(buf, uint32(len(s)))

	for _, entry := range s {
		buf = engine.AppendUint16(buf, uint16(len(entry)))
		buf = append(buf, entry...)
	}

	buf = engine.AppendUint64(buf, hash.Sum(buf))

	return buf, nil
}

// ReadSnapshot parses snapshot data produced by MarshalBinary, verifying the
// magic number and the xxHash64 trailer.
func ReadSnapshot(data []byte) (Snapshot, error) {
	engine := endian.GetLittleEndianEngine()

	if len(data) < snapshotHeaderSize+snapshotTrailerSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidSnapshotPayload, len(data))
	}

	if engine.Uint16(data[0:2]) != MagicSnapshotV1 {
		return nil, errs.ErrInvalidMagicNumber
	}

	payload := data[:len(data)-snapshotTrailerSize]
	want := engine.Uint64(data[len(data)-snapshotTrailerSize:])
	if hash.Sum(payload) != want {
		return nil, errs.ErrChecksumMismatch
	}

	count := int(engine.Uint32(data[2:6]))
	if count > MaxEntries {
		return nil, fmt.Errorf("%w: entry count %d exceeds %d",
			errs.ErrInvalidSnapshotPayload, count, MaxEntries)
	}

	snap := make(Snapshot, 0, count)
	pos := snapshotHeaderSize
	for i := 0; i < count; i++ {
		if pos+2 > len(payload) {
			return nil, fmt.Errorf("%w: truncated at entry %d", errs.ErrInvalidSnapshotPayload, i)
		}
		strLen := int(engine.Uint16(payload[pos : pos+2]))
		pos += 2

		if pos+strLen > len(payload) {
			return nil, fmt.Errorf("%w: truncated at entry %d", errs.ErrInvalidSnapshotPayload, i)
		}
		snap = append(snap, string(payload[pos:pos+strLen]))
		pos += strLen
	}

	if pos != len(payload) {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidSnapshotPayload, len(payload)-pos)
	}

	return snap, nil
}
