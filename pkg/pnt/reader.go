package pnt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/mr-karan/pnt/internal/stream"
)

// preallocCap bounds the capacity reserved up front for arrays and
// objects. A malformed stream can declare any count; actual elements
// still have to decode, so growth past this is organic.
const preallocCap = 1 << 10

// Reader decodes headers and values from an underlying byte stream. Like
// the writer it is single-threaded: one reader owns one stream.
type Reader struct {
	src  *stream.Reader
	opts Options
}

// NewReader initialises a reader over r.
func NewReader(r io.Reader, cfgs ...Config) (*Reader, error) {
	opts := DefaultOptions()
	for _, cfg := range cfgs {
		if err := cfg(opts); err != nil {
			return nil, fmt.Errorf("error applying reader config: %w", err)
		}
	}

	return &Reader{
		src:  stream.NewReader(r, opts.bufferSize),
		opts: *opts,
	}, nil
}

// ReadHeader reads and validates the fixed 64-byte preamble. It fails
// with ErrInvalidMagic for non-PNT streams and ErrChecksumMismatch for
// corrupted ones.
func (r *Reader) ReadHeader() (Header, error) {
	var b [HeaderSize]byte
	if err := r.src.ReadFull(b[:]); err != nil {
		return Header{}, eof(err)
	}

	var h Header
	if err := h.decode(b[:]); err != nil {
		return Header{}, err
	}
	return h, nil
}

// ReadValue decodes one tagged value. Where one value ends the next
// begins; callers track how much of the data section remains via Count.
func (r *Reader) ReadValue() (Value, error) {
	return r.readValue(0)
}

// Count returns the total number of bytes consumed so far.
func (r *Reader) Count() int64 {
	return r.src.Count()
}

func (r *Reader) readValue(depth int) (Value, error) {
	if depth > r.opts.maxDepth {
		return nil, ErrMaxDepth
	}

	tag, err := r.src.ReadByte()
	if err != nil {
		return nil, eof(err)
	}

	switch tag {
	case TagNull:
		return Null{}, nil

	case TagBool:
		b, err := r.src.ReadByte()
		if err != nil {
			return nil, eof(err)
		}
		return Bool(b != 0), nil

	case TagInt8:
		b, err := r.src.ReadByte()
		if err != nil {
			return nil, eof(err)
		}
		return Int8(b), nil

	case TagUint8:
		b, err := r.src.ReadByte()
		if err != nil {
			return nil, eof(err)
		}
		return Uint8(b), nil

	case TagInt16:
		n, err := r.readUint16()
		return Int16(n), err

	case TagUint16:
		n, err := r.readUint16()
		return Uint16(n), err

	case TagInt32:
		n, err := r.readUint32()
		return Int32(n), err

	case TagUint32:
		n, err := r.readUint32()
		return Uint32(n), err

	case TagInt64:
		n, err := r.readUint64()
		return Int64(n), err

	case TagUint64:
		n, err := r.readUint64()
		return Uint64(n), err

	case TagFloat32:
		n, err := r.readUint32()
		return Float32(math.Float32frombits(n)), err

	case TagFloat64:
		n, err := r.readUint64()
		return Float64(math.Float64frombits(n)), err

	case TagString:
		b, err := r.readBytes()
		if err != nil {
			return nil, err
		}
		return String(b), nil

	case TagBytes:
		b, err := r.readBytes()
		if err != nil {
			return nil, err
		}
		return Bytes(b), nil

	case TagArray:
		count, err := ReadLength(r.src)
		if err != nil {
			return nil, err
		}
		arr := make(Array, 0, clamp(count))
		for i := uint64(0); i < count; i++ {
			item, err := r.readValue(depth + 1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, item)
		}
		return arr, nil

	case TagObject:
		count, err := ReadLength(r.src)
		if err != nil {
			return nil, err
		}
		obj := make(Object, clamp(count))
		for i := uint64(0); i < count; i++ {
			kb, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			key := string(kb)
			if _, ok := obj[key]; ok {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
			}
			val, err := r.readValue(depth + 1)
			if err != nil {
				return nil, err
			}
			obj[key] = val
		}
		return obj, nil

	case TagTimestamp:
		n, err := r.readUint64()
		return Timestamp(n), err

	case TagDuration:
		n, err := r.readUint64()
		return Duration(n), err

	case TagReference:
		n, err := r.readUint64()
		return Reference(n), err

	case TagDecimal:
		var b [16]byte
		if err := r.src.ReadFull(b[:]); err != nil {
			return nil, eof(err)
		}
		return Decimal{
			Lo:    binary.LittleEndian.Uint32(b[0:4]),
			Mid:   binary.LittleEndian.Uint32(b[4:8]),
			Hi:    binary.LittleEndian.Uint32(b[8:12]),
			Flags: binary.LittleEndian.Uint32(b[12:16]),
		}, nil

	default:
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownTag, tag)
	}
}

// readBytes reads a varint length followed by that many raw bytes. The
// buffer grows chunk by chunk so a stream claiming an absurd length fails
// on truncation instead of forcing a giant allocation up front.
func (r *Reader) readBytes() ([]byte, error) {
	n, err := ReadLength(r.src)
	if err != nil {
		return nil, err
	}

	const chunk = 64 << 10
	if n <= chunk {
		b := make([]byte, n)
		if err := r.src.ReadFull(b); err != nil {
			return nil, eof(err)
		}
		return b, nil
	}

	b := make([]byte, 0, chunk)
	for remaining := n; remaining > 0; {
		step := remaining
		if step > chunk {
			step = chunk
		}
		start := len(b)
		b = append(b, make([]byte, step)...)
		if err := r.src.ReadFull(b[start:]); err != nil {
			return nil, eof(err)
		}
		remaining -= step
	}
	return b, nil
}

func (r *Reader) readUint16() (uint16, error) {
	var b [2]byte
	if err := r.src.ReadFull(b[:]); err != nil {
		return 0, eof(err)
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func (r *Reader) readUint32() (uint32, error) {
	var b [4]byte
	if err := r.src.ReadFull(b[:]); err != nil {
		return 0, eof(err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func (r *Reader) readUint64() (uint64, error) {
	var b [8]byte
	if err := r.src.ReadFull(b[:]); err != nil {
		return 0, eof(err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func clamp(n uint64) int {
	if n > preallocCap {
		return preallocCap
	}
	return int(n)
}
