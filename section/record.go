// Package section defines the on-wire layout of log records.
//
// A log stream is a flat sequence of records, little-endian throughout.
// Two record types exist:
//
//	Base record (13 bytes, no payload):
//	  u8  type = 1
//	  u16 rel_ts (always 0)
//	  u16 format_id (0 if unused)
//	  u64 absolute base timestamp
//
//	Delta record (5-byte header + payload):
//	  u8  type = 0
//	  u16 rel_ts (tick delta from the current base)
//	  u16 format_id
//	  payload: sequence of (u8 value tag, value bytes), one per format
//	           string placeholder
//
// Base records establish the absolute timestamp that subsequent delta records
// are measured against. Records are never split across buffer boundaries.
package section

import (
	"github.com/arloliu/binlog/endian"
	"github.com/arloliu/binlog/format"
)

const (
	// RecordHeaderSize is the fixed header size shared by both record types:
	// type tag, relative timestamp, format identifier.
	RecordHeaderSize = 1 + 2 + 2

	// BaseRecordSize is the full size of a base record: the common header
	// followed by the 8-byte absolute timestamp. Base records have no payload.
	BaseRecordSize = RecordHeaderSize + 8

	// MaxRelativeTicks is the largest tick delta a delta record can carry.
	MaxRelativeTicks = 0xFFFF
)

// PutBaseRecord writes a base record carrying ts into buf, which must have at
// least BaseRecordSize bytes. It returns the number of bytes written.
func PutBaseRecord(buf []byte, engine endian.EndianEngine, ts uint64) int {
	buf[0] = byte(format.RecordBase)
	engine.PutUint16(buf[1:3], 0)
	engine.PutUint16(buf[3:5], 0)
	engine.PutUint64(buf[5:13], ts)

	return BaseRecordSize
}

// PutDeltaHeader writes a delta record header into buf, which must have at
// least RecordHeaderSize bytes. The payload follows the header; its length is
// implied by the format string and is not part of the header.
func PutDeltaHeader(buf []byte, engine endian.EndianEngine, rel uint16, formatID uint16) int {
	buf[0] = byte(format.RecordDelta)
	engine.PutUint16(buf[1:3], rel)
	engine.PutUint16(buf[3:5], formatID)

	return RecordHeaderSize
}

// RecordHeader is the decoded fixed-size prefix common to both record types.
type RecordHeader struct {
	Type     format.RecordType
	Rel      uint16
	FormatID uint16
}

// ReadRecordHeader decodes the fixed header at the start of buf.
// It returns false if buf is shorter than RecordHeaderSize.
func ReadRecordHeader(buf []byte, engine endian.EndianEngine) (RecordHeader, bool) {
	if len(buf) < RecordHeaderSize {
		return RecordHeader{}, false
	}

	return RecordHeader{
		Type:     format.RecordType(buf[0]),
		Rel:      engine.Uint16(buf[1:3]),
		FormatID: engine.Uint16(buf[3:5]),
	}, true
}
