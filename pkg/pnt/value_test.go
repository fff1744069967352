package pnt

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// encodeValue is a test helper that runs a value through a writer and
// returns the raw bytes.
func encodeValue(t *testing.T, v Value, cfgs ...Config) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := NewWriter(&buf, cfgs...)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteValue(v); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// decodeValue is a test helper that decodes a single value from raw bytes.
func decodeValue(t *testing.T, b []byte, cfgs ...Config) (Value, error) {
	t.Helper()

	r, err := NewReader(bytes.NewReader(b), cfgs...)
	if err != nil {
		t.Fatal(err)
	}
	return r.ReadValue()
}

func TestRoundTrip(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	negDec, err := NewDecimal(123450, 0, 0, 3, true)
	assert.NoError(err)
	posDec, err := NewDecimal(1, 2, 3, 28, false)
	assert.NoError(err)

	cases := map[string]Value{
		"null":            Null{},
		"bool_true":       Bool(true),
		"bool_false":      Bool(false),
		"int8_min":        Int8(math.MinInt8),
		"int8_max":        Int8(math.MaxInt8),
		"int16_min":       Int16(math.MinInt16),
		"int16_max":       Int16(math.MaxInt16),
		"int32_min":       Int32(math.MinInt32),
		"int32_max":       Int32(math.MaxInt32),
		"int64_min":       Int64(math.MinInt64),
		"int64_max":       Int64(math.MaxInt64),
		"uint8_zero":      Uint8(0),
		"uint8_max":       Uint8(math.MaxUint8),
		"uint16_max":      Uint16(math.MaxUint16),
		"uint32_max":      Uint32(math.MaxUint32),
		"uint64_max":      Uint64(math.MaxUint64),
		"float32":         Float32(3.14),
		"float64":         Float64(-2.718281828),
		"float64_inf":     Float64(math.Inf(1)),
		"string_empty":    String(""),
		"string":          String("hello, world"),
		"string_unicode":  String("🔑 clé"),
		"bytes_empty":     Bytes{},
		"bytes":           Bytes{0x00, 0xFF, 0x7F},
		"array_empty":     Array{},
		"array":           Array{Int32(1), String("two"), Null{}},
		"object_empty":    Object{},
		"object":          Object{"a": Int64(1), "b": Bool(false)},
		"timestamp_zero":  Timestamp(0),
		"timestamp":       TimestampOf(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)),
		"duration_zero":   Duration(0),
		"duration_neg":    DurationOf(-90 * time.Second),
		"reference":       Reference(0xDEADBEEFCAFE),
		"decimal_neg":     negDec,
		"decimal_pos":     posDec,
	}

	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			raw := encodeValue(t, v)
			got, err := decodeValue(t, raw)
			assert.NoError(err)
			assert.Equal(v, got)
		})
	}
}

func TestRoundTripNested(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	// Array -> Object -> Array, three levels deep.
	v := Array{
		Object{
			"inner": Array{Int8(1), Int8(2), Int8(3)},
			"name":  String("nested"),
		},
		Null{},
	}

	raw := encodeValue(t, v)
	got, err := decodeValue(t, raw)
	assert.NoError(err)
	assert.Equal(v, got)
}

func TestKnownEncoding(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	// Minimal config scenario. Object keys go out lexicographically:
	// enabled, name, port.
	v := Object{
		"name":    String("svc"),
		"port":    Uint16(8080),
		"enabled": Bool(true),
	}

	want := []byte{
		0x0F, 0x03,
		0x07, 'e', 'n', 'a', 'b', 'l', 'e', 'd', 0x01, 0x01,
		0x04, 'n', 'a', 'm', 'e', 0x0C, 0x03, 's', 'v', 'c',
		0x04, 'p', 'o', 'r', 't', 0x07, 0x90, 0x1F,
	}
	assert.Equal(want, encodeValue(t, v))

	got, err := decodeValue(t, want)
	assert.NoError(err)
	assert.Equal(v, got)
	assert.Len(got.(Object), 3)
}

func TestTimestampConversion(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	at := time.Date(2023, 11, 5, 8, 30, 0, 123456700, time.UTC)
	ts := TimestampOf(at)
	assert.True(at.Equal(ts.Time()), "expected %s, got %s", at, ts.Time())

	d := DurationOf(90 * time.Minute)
	assert.Equal(90*time.Minute, d.Std())
}

func TestWriteNilValue(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	assert.NoError(err)

	err = w.WriteValue(nil)
	assert.ErrorIs(err, ErrUnsupportedType)
}
