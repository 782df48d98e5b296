package logger

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/binlog/endian"
	"github.com/arloliu/binlog/errs"
	"github.com/arloliu/binlog/format"
	"github.com/arloliu/binlog/registry"
)

// Value is one argument of a log record.
//
// A Value is a small immutable struct: scalar kinds live entirely in the num
// field, string kinds reference their text without copying. Constructing and
// encoding values performs no heap allocation; dynamic string bytes are copied
// directly into the record buffer at encode time.
type Value struct {
	num  uint64
	str  string
	kind format.ValueKind
}

// String creates a dynamic string value. The bytes are copied into the record
// buffer when the value is encoded.
func String(s string) Value {
	return Value{kind: format.KindString, str: s}
}

// StaticRef creates a static string reference carrying a registry identifier.
// It encodes in two bytes regardless of the string's length.
func StaticRef(id uint16) Value {
	return Value{kind: format.KindStaticRef, num: uint64(id)}
}

// Int64 creates a signed 64-bit integer value.
func Int64(v int64) Value {
	return Value{kind: format.KindInt64, num: uint64(v)}
}

// Uint64 creates an unsigned 64-bit integer value.
func Uint64(v uint64) Value {
	return Value{kind: format.KindUint64, num: v}
}

// Float64 creates a 64-bit floating point value.
func Float64(v float64) Value {
	return Value{kind: format.KindFloat64, num: math.Float64bits(v)}
}

// Bool creates a boolean value.
func Bool(v bool) Value {
	var n uint64
	if v {
		n = 1
	}

	return Value{kind: format.KindBool, num: n}
}

// Kind returns the value's type tag.
func (v Value) Kind() format.ValueKind {
	return v.kind
}

// Text returns the text of a dynamic string value, or the resolved text of a
// static reference decoded by a Reader.
func (v Value) Text() string {
	return v.str
}

// RefID returns the registry identifier of a static reference value.
func (v Value) RefID() uint16 {
	return uint16(v.num)
}

// Int returns the payload of a signed integer value.
func (v Value) Int() int64 {
	return int64(v.num)
}

// Uint returns the payload of an unsigned integer value.
func (v Value) Uint() uint64 {
	return v.num
}

// Float returns the payload of a floating point value.
func (v Value) Float() float64 {
	return math.Float64frombits(v.num)
}

// Bool returns the payload of a boolean value.
func (v Value) Bool() bool {
	return v.num != 0
}

// String implements fmt.Stringer; it renders the value the way Entry.Render
// substitutes it into a format string.
func (v Value) String() string {
	switch v.kind {
	case format.KindString, format.KindStaticRef:
		return v.str
	case format.KindInt64:
		return strconv.FormatInt(v.Int(), 10)
	case format.KindUint64:
		return strconv.FormatUint(v.num, 10)
	case format.KindFloat64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case format.KindBool:
		return strconv.FormatBool(v.Bool())
	default:
		return "<invalid>"
	}
}

// encodedSize returns the number of bytes the value occupies on the wire,
// including its one-byte type tag.
func (v Value) encodedSize() int {
	switch v.kind {
	case format.KindString:
		return 1 + 2 + len(v.str)
	case format.KindStaticRef:
		return 1 + 2
	case format.KindInt64, format.KindUint64, format.KindFloat64:
		return 1 + 8
	case format.KindBool:
		return 1 + 1
	default:
		return 1
	}
}

// put encodes the value into buf, which must have at least encodedSize bytes.
// It returns the number of bytes written.
func (v Value) put(buf []byte, engine endian.EndianEngine) int {
	buf[0] = byte(v.kind)

	switch v.kind {
	case format.KindString:
		engine.PutUint16(buf[1:3], uint16(len(v.str)))
		copy(buf[3:], v.str)

		return 3 + len(v.str)

	case format.KindStaticRef:
		engine.PutUint16(buf[1:3], uint16(v.num))

		return 3

	case format.KindInt64, format.KindUint64, format.KindFloat64:
		engine.PutUint64(buf[1:9], v.num)

		return 9

	case format.KindBool:
		buf[1] = byte(v.num)

		return 2

	default:
		return 1
	}
}

// decodeValue decodes one tagged value from the front of data.
//
// Static references are resolved against the supplied resolver so decoded
// entries render without further lookups. Returns the value and the number of
// bytes consumed.
func decodeValue(data []byte, engine endian.EndianEngine, resolver registry.Resolver) (Value, int, error) {
	if len(data) < 1 {
		return Value{}, 0, fmt.Errorf("%w: missing value tag", errs.ErrMalformedInput)
	}

	kind := format.ValueKind(data[0])
	switch kind {
	case format.KindString:
		if len(data) < 3 {
			return Value{}, 0, fmt.Errorf("%w: truncated string length", errs.ErrMalformedInput)
		}
		strLen := int(engine.Uint16(data[1:3]))
		if len(data) < 3+strLen {
			return Value{}, 0, fmt.Errorf("%w: string payload shorter than %d bytes", errs.ErrMalformedInput, strLen)
		}

		return String(string(data[3 : 3+strLen])), 3 + strLen, nil

	case format.KindStaticRef:
		if len(data) < 3 {
			return Value{}, 0, fmt.Errorf("%w: truncated static reference", errs.ErrMalformedInput)
		}
		id := engine.Uint16(data[1:3])
		text, ok := resolver.Lookup(id)
		if !ok {
			return Value{}, 0, fmt.Errorf("%w: static reference id %d", errs.ErrUnresolvedFormat, id)
		}
		v := StaticRef(id)
		v.str = text

		return v, 3, nil

	case format.KindInt64, format.KindUint64, format.KindFloat64:
		if len(data) < 9 {
			return Value{}, 0, fmt.Errorf("%w: truncated %s value", errs.ErrMalformedInput, kind)
		}

		return Value{kind: kind, num: engine.Uint64(data[1:9])}, 9, nil

	case format.KindBool:
		if len(data) < 2 {
			return Value{}, 0, fmt.Errorf("%w: truncated bool value", errs.ErrMalformedInput)
		}

		return Bool(data[1] != 0), 2, nil

	default:
		return Value{}, 0, fmt.Errorf("%w: unknown value tag 0x%02x", errs.ErrMalformedInput, data[0])
	}
}
