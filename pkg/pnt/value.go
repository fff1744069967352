package pnt

import "time"

// Wire type tags. One tag byte precedes every encoded value. The
// assignments are part of the format contract and must not be reordered.
const (
	TagNull      byte = 0x00
	TagBool      byte = 0x01
	TagInt8      byte = 0x02
	TagInt16     byte = 0x03
	TagInt32     byte = 0x04
	TagInt64     byte = 0x05
	TagUint8     byte = 0x06
	TagUint16    byte = 0x07
	TagUint32    byte = 0x08
	TagUint64    byte = 0x09
	TagFloat32   byte = 0x0A
	TagFloat64   byte = 0x0B
	TagString    byte = 0x0C
	TagBytes     byte = 0x0D
	TagArray     byte = 0x0E
	TagObject    byte = 0x0F
	TagTimestamp byte = 0x10
	TagDuration  byte = 0x11
	TagReference byte = 0x12
	TagDecimal   byte = 0x13
)

// Value is one PNT value. It is a sealed interface: only the concrete
// types in this package implement it, one per wire variant.
type Value interface {
	// tag returns the wire type tag. Unexported so the set of variants
	// stays closed; an unknown variant can't exist at encode time.
	tag() byte
}

// Null is the explicit null value. It is a value in its own right, not a
// missing entry: arrays and objects never have holes.
type Null struct{}

// Bool is a boolean value.
type Bool bool

// Int8 is a signed 8-bit integer.
type Int8 int8

// Int16 is a signed 16-bit integer.
type Int16 int16

// Int32 is a signed 32-bit integer.
type Int32 int32

// Int64 is a signed 64-bit integer.
type Int64 int64

// Uint8 is an unsigned 8-bit integer.
type Uint8 uint8

// Uint16 is an unsigned 16-bit integer.
type Uint16 uint16

// Uint32 is an unsigned 32-bit integer.
type Uint32 uint32

// Uint64 is an unsigned 64-bit integer.
type Uint64 uint64

// Float32 is an IEEE-754 single-precision float.
type Float32 float32

// Float64 is an IEEE-754 double-precision float.
type Float64 float64

// String is a UTF-8 string.
type String string

// Bytes is a raw byte array.
type Bytes []byte

// Array is an ordered sequence of values.
type Array []Value

// Object is a string-keyed mapping of values. Key uniqueness is enforced
// on decode; insertion order carries no meaning, and keys are written in
// lexicographic order so the same object always encodes to the same bytes.
type Object map[string]Value

// Timestamp is a UTC instant counted in 100-nanosecond ticks since the
// Unix epoch. The tick resolution is fixed by the format contract; it is
// not self-describing on the wire.
type Timestamp int64

// Duration is a signed time span counted in 100-nanosecond ticks.
type Duration int64

// Reference is an opaque 64-bit identifier. Its meaning belongs to the
// consumer, not the codec.
type Reference uint64

func (Null) tag() byte      { return TagNull }
func (Bool) tag() byte      { return TagBool }
func (Int8) tag() byte      { return TagInt8 }
func (Int16) tag() byte     { return TagInt16 }
func (Int32) tag() byte     { return TagInt32 }
func (Int64) tag() byte     { return TagInt64 }
func (Uint8) tag() byte     { return TagUint8 }
func (Uint16) tag() byte    { return TagUint16 }
func (Uint32) tag() byte    { return TagUint32 }
func (Uint64) tag() byte    { return TagUint64 }
func (Float32) tag() byte   { return TagFloat32 }
func (Float64) tag() byte   { return TagFloat64 }
func (String) tag() byte    { return TagString }
func (Bytes) tag() byte     { return TagBytes }
func (Array) tag() byte     { return TagArray }
func (Object) tag() byte    { return TagObject }
func (Timestamp) tag() byte { return TagTimestamp }
func (Duration) tag() byte  { return TagDuration }
func (Reference) tag() byte { return TagReference }
func (Decimal) tag() byte   { return TagDecimal }

// TagOf returns the wire type tag of v.
func TagOf(v Value) byte {
	return v.tag()
}

// TicksPerSecond is the number of 100ns ticks in one second.
const TicksPerSecond = 10_000_000

// TimestampOf converts a time.Time to a Timestamp, truncating below
// 100ns resolution.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp(t.UnixNano() / 100)
}

// Time converts the timestamp back to a time.Time in UTC.
func (ts Timestamp) Time() time.Time {
	return time.Unix(0, int64(ts)*100).UTC()
}

// DurationOf converts a time.Duration to a Duration, truncating below
// 100ns resolution.
func DurationOf(d time.Duration) Duration {
	return Duration(d / 100)
}

// Std converts the duration back to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d) * 100
}
