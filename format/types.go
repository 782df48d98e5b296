package format

type (
	RecordType      uint8
	ValueKind       uint8
	CompressionType uint8
)

const (
	// Record types. Every record in a log stream begins with one of these tags.
	RecordDelta RecordType = 0x0 // RecordDelta carries a 16-bit timestamp delta against the current base.
	RecordBase  RecordType = 0x1 // RecordBase establishes an absolute 64-bit base timestamp.

	// Value kinds. Each argument value in a delta record payload is prefixed
	// with one of these tags; every encoding is self-delimiting.
	KindString    ValueKind = 0x0 // KindString is a dynamic string: u16 length + raw bytes.
	KindStaticRef ValueKind = 0x1 // KindStaticRef is a 16-bit registry identifier.
	KindInt64     ValueKind = 0x2 // KindInt64 is a signed 64-bit integer, little-endian two's complement.
	KindUint64    ValueKind = 0x3 // KindUint64 is an unsigned 64-bit integer, little-endian.
	KindFloat64   ValueKind = 0x4 // KindFloat64 is an IEEE-754 binary64 value, little-endian.
	KindBool      ValueKind = 0x5 // KindBool is a single byte, 0 or 1.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (r RecordType) String() string {
	switch r {
	case RecordDelta:
		return "Delta"
	case RecordBase:
		return "Base"
	default:
		return "Unknown"
	}
}

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindStaticRef:
		return "StaticRef"
	case KindInt64:
		return "Int64"
	case KindUint64:
		return "Uint64"
	case KindFloat64:
		return "Float64"
	case KindBool:
		return "Bool"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
