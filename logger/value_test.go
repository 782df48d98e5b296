package logger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/binlog/format"
	"github.com/arloliu/binlog/registry"
)

func TestValue_Constructors(t *testing.T) {
	require.Equal(t, format.KindString, String("x").Kind())
	require.Equal(t, format.KindStaticRef, StaticRef(3).Kind())
	require.Equal(t, format.KindInt64, Int64(-1).Kind())
	require.Equal(t, format.KindUint64, Uint64(1).Kind())
	require.Equal(t, format.KindFloat64, Float64(1.0).Kind())
	require.Equal(t, format.KindBool, Bool(false).Kind())

	require.Equal(t, "payload", String("payload").Text())
	require.Equal(t, uint16(3), StaticRef(3).RefID())
	require.Equal(t, int64(-9_000_000_000), Int64(-9_000_000_000).Int())
	require.Equal(t, uint64(77), Uint64(77).Uint())
	require.InDelta(t, -2.5, Float64(-2.5).Float(), 0)
	require.False(t, Bool(false).Bool())
	require.True(t, Bool(true).Bool())
}

func TestValue_String(t *testing.T) {
	require.Equal(t, "text", String("text").String())
	require.Equal(t, "-42", Int64(-42).String())
	require.Equal(t, "42", Uint64(42).String())
	require.Equal(t, "2.5", Float64(2.5).String())
	require.Equal(t, "true", Bool(true).String())
	require.Equal(t, "false", Bool(false).String())
}

func TestValue_EncodedSize(t *testing.T) {
	require.Equal(t, 1+2+5, String("hello").encodedSize())
	require.Equal(t, 1+2, StaticRef(0).encodedSize())
	require.Equal(t, 1+8, Int64(0).encodedSize())
	require.Equal(t, 1+8, Uint64(0).encodedSize())
	require.Equal(t, 1+8, Float64(0).encodedSize())
	require.Equal(t, 1+1, Bool(false).encodedSize())
}

func TestValue_PutDecodeRoundTrip(t *testing.T) {
	reg := registry.NewRegistry()
	refID, err := reg.Intern("static text")
	require.NoError(t, err)

	values := []Value{
		String("dynamic text"),
		String(""),
		StaticRef(refID),
		Int64(-1),
		Uint64(0xFFFFFFFFFFFFFFFF),
		Float64(6.02214076e23),
		Bool(true),
		Bool(false),
	}

	buf := make([]byte, 256)
	for _, want := range values {
		n := want.put(buf, testEngine)
		require.Equal(t, want.encodedSize(), n)

		got, consumed, err := decodeValue(buf[:n], testEngine, reg)
		require.NoError(t, err)
		require.Equal(t, n, consumed)
		require.Equal(t, want.Kind(), got.Kind())

		switch want.Kind() {
		case format.KindString:
			require.Equal(t, want.Text(), got.Text())
		case format.KindStaticRef:
			require.Equal(t, want.RefID(), got.RefID())
			require.Equal(t, "static text", got.Text())
		default:
			require.Equal(t, want.Uint(), got.Uint())
		}
	}
}

func TestValue_DecodeUnresolvedStaticRef(t *testing.T) {
	buf := make([]byte, 8)
	n := StaticRef(9).put(buf, testEngine)

	_, _, err := decodeValue(buf[:n], testEngine, registry.Snapshot{})
	require.Error(t, err)
}
