package pnt

import (
	"fmt"
	"time"
)

// FromNative converts a plain Go value (the shape config parsers and
// encoding/json produce) into a Value. Integers map to their exact-width
// variant where the Go type carries one; bare int/uint go to 64 bits.
// Unmapped host types fail with ErrUnsupportedType immediately rather
// than being silently coerced.
func FromNative(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil

	case bool:
		return Bool(x), nil

	case int8:
		return Int8(x), nil
	case int16:
		return Int16(x), nil
	case int32:
		return Int32(x), nil
	case int64:
		return Int64(x), nil
	case int:
		return Int64(x), nil

	case uint8:
		return Uint8(x), nil
	case uint16:
		return Uint16(x), nil
	case uint32:
		return Uint32(x), nil
	case uint64:
		return Uint64(x), nil
	case uint:
		return Uint64(x), nil

	case float32:
		return Float32(x), nil
	case float64:
		return Float64(x), nil

	case string:
		return String(x), nil
	case []byte:
		return Bytes(x), nil

	case time.Time:
		return TimestampOf(x), nil
	case time.Duration:
		return DurationOf(x), nil

	case []any:
		arr := make(Array, 0, len(x))
		for i, item := range x {
			val, err := FromNative(item)
			if err != nil {
				return nil, fmt.Errorf("array index %d: %w", i, err)
			}
			arr = append(arr, val)
		}
		return arr, nil

	case map[string]any:
		obj := make(Object, len(x))
		for k, item := range x {
			val, err := FromNative(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			obj[k] = val
		}
		return obj, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// ToNative converts a Value back to a plain Go value: integers and floats
// keep their width, timestamps become time.Time, durations time.Duration,
// decimals their exact string form, references their raw uint64.
func ToNative(v Value) any {
	switch x := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(x)
	case Int8:
		return int8(x)
	case Int16:
		return int16(x)
	case Int32:
		return int32(x)
	case Int64:
		return int64(x)
	case Uint8:
		return uint8(x)
	case Uint16:
		return uint16(x)
	case Uint32:
		return uint32(x)
	case Uint64:
		return uint64(x)
	case Float32:
		return float32(x)
	case Float64:
		return float64(x)
	case String:
		return string(x)
	case Bytes:
		return []byte(x)
	case Array:
		out := make([]any, 0, len(x))
		for _, item := range x {
			out = append(out, ToNative(item))
		}
		return out
	case Object:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = ToNative(item)
		}
		return out
	case Timestamp:
		return x.Time()
	case Duration:
		return x.Std()
	case Reference:
		return uint64(x)
	case Decimal:
		return x.String()
	default:
		return nil
	}
}
