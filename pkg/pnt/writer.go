package pnt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/mr-karan/pnt/internal/stream"
)

// Writer encodes headers and values onto an underlying byte stream. It is
// single-threaded: one writer owns one stream, and callers needing
// parallel encodes use independent writers over independent streams.
type Writer struct {
	sink *stream.Writer
	opts Options
}

// NewWriter initialises a writer over w.
func NewWriter(w io.Writer, cfgs ...Config) (*Writer, error) {
	opts := DefaultOptions()
	for _, cfg := range cfgs {
		if err := cfg(opts); err != nil {
			return nil, fmt.Errorf("error applying writer config: %w", err)
		}
	}

	return &Writer{
		sink: stream.NewWriter(w, opts.bufferSize),
		opts: *opts,
	}, nil
}

// WriteHeader encodes h as the fixed 64-byte preamble, computing its
// checksum in the process. Callers that don't know final sizes up front
// write a placeholder first and rewrite the header once sizes are known.
func (w *Writer) WriteHeader(h *Header) error {
	b := h.encode()
	if _, err := w.sink.Write(b[:]); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	return nil
}

// WriteValue appends one tagged value to the stream.
func (w *Writer) WriteValue(v Value) error {
	return w.writeValue(v, 0)
}

// Write appends raw bytes to the stream. The index section of a file is
// opaque to the codec; consumers append it through here so byte counts
// stay consistent.
func (w *Writer) Write(p []byte) (int, error) {
	return w.sink.Write(p)
}

// Count returns the total number of bytes written so far, buffered or not.
func (w *Writer) Count() int64 {
	return w.sink.Count()
}

// Flush forces all buffered bytes to the underlying stream.
func (w *Writer) Flush() error {
	return w.sink.Flush()
}

// Close flushes the writer. The writer must not be used afterwards; the
// underlying stream stays open and belongs to the caller.
func (w *Writer) Close() error {
	return w.sink.Flush()
}

func (w *Writer) writeValue(v Value, depth int) error {
	if depth > w.opts.maxDepth {
		return ErrMaxDepth
	}
	if v == nil {
		return fmt.Errorf("%w: untyped nil (use pnt.Null)", ErrUnsupportedType)
	}

	if err := w.sink.WriteByte(v.tag()); err != nil {
		return err
	}

	switch val := v.(type) {
	case Null:
		return nil

	case Bool:
		if val {
			return w.sink.WriteByte(0x01)
		}
		return w.sink.WriteByte(0x00)

	case Int8:
		return w.sink.WriteByte(byte(val))
	case Uint8:
		return w.sink.WriteByte(byte(val))

	case Int16:
		return w.writeUint16(uint16(val))
	case Uint16:
		return w.writeUint16(uint16(val))

	case Int32:
		return w.writeUint32(uint32(val))
	case Uint32:
		return w.writeUint32(uint32(val))

	case Int64:
		return w.writeUint64(uint64(val))
	case Uint64:
		return w.writeUint64(uint64(val))

	case Float32:
		return w.writeUint32(math.Float32bits(float32(val)))
	case Float64:
		return w.writeUint64(math.Float64bits(float64(val)))

	case String:
		return w.writeBytes([]byte(val))
	case Bytes:
		return w.writeBytes(val)

	case Array:
		if err := WriteLength(w.sink, uint64(len(val))); err != nil {
			return err
		}
		for _, item := range val {
			if err := w.writeValue(item, depth+1); err != nil {
				return err
			}
		}
		return nil

	case Object:
		if err := WriteLength(w.sink, uint64(len(val))); err != nil {
			return err
		}
		// Keys go out in lexicographic order so the same object always
		// encodes to the same bytes.
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := w.writeBytes([]byte(k)); err != nil {
				return err
			}
			if err := w.writeValue(val[k], depth+1); err != nil {
				return err
			}
		}
		return nil

	case Timestamp:
		return w.writeUint64(uint64(val))
	case Duration:
		return w.writeUint64(uint64(val))
	case Reference:
		return w.writeUint64(uint64(val))

	case Decimal:
		if err := w.writeUint32(val.Lo); err != nil {
			return err
		}
		if err := w.writeUint32(val.Mid); err != nil {
			return err
		}
		if err := w.writeUint32(val.Hi); err != nil {
			return err
		}
		return w.writeUint32(val.Flags)

	default:
		// Unreachable while Value stays sealed.
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// writeBytes writes a varint length followed by the raw bytes.
func (w *Writer) writeBytes(b []byte) error {
	if err := WriteLength(w.sink, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.sink.Write(b)
	return err
}

func (w *Writer) writeUint16(n uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], n)
	_, err := w.sink.Write(b[:])
	return err
}

func (w *Writer) writeUint32(n uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], n)
	_, err := w.sink.Write(b[:])
	return err
}

func (w *Writer) writeUint64(n uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	_, err := w.sink.Write(b[:])
	return err
}
