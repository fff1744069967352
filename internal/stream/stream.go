package stream

import (
	"bufio"
	"io"
)

// DefaultBufferSize is the buffer size used when the caller doesn't
// configure one. 8KiB amortises syscalls well for typical config sizes.
const DefaultBufferSize = 8 << 10

// Reader wraps an underlying io.Reader with a fixed-size buffer and keeps
// a running count of the bytes handed out. Short reads from the underlying
// source (sockets, pipes) are retried transparently, so a partial read is
// never mistaken for end-of-stream.
type Reader struct {
	rd    *bufio.Reader
	count int64
}

// NewReader initialises a buffered reader over r.
// A size below one byte falls back to the default.
func NewReader(r io.Reader, size int) *Reader {
	if size < 1 {
		size = DefaultBufferSize
	}
	return &Reader{
		rd: bufio.NewReaderSize(r, size),
	}
}

// ReadByte reads and returns a single byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.rd.ReadByte()
	if err != nil {
		return 0, err
	}
	r.count++
	return b, nil
}

// ReadFull fills p entirely from the stream. If the source is exhausted
// mid-fill it returns io.ErrUnexpectedEOF; if no bytes were available at
// all it returns io.EOF.
func (r *Reader) ReadFull(p []byte) error {
	n, err := io.ReadFull(r.rd, p)
	r.count += int64(n)
	return err
}

// Count returns the total number of bytes consumed so far.
func (r *Reader) Count() int64 {
	return r.count
}

// Writer wraps an underlying io.Writer with a fixed-size buffer and keeps
// a running count of the bytes accepted.
type Writer struct {
	wr    *bufio.Writer
	count int64
}

// NewWriter initialises a buffered writer over w.
// A size below one byte falls back to the default.
func NewWriter(w io.Writer, size int) *Writer {
	if size < 1 {
		size = DefaultBufferSize
	}
	return &Writer{
		wr: bufio.NewWriterSize(w, size),
	}
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error {
	if err := w.wr.WriteByte(b); err != nil {
		return err
	}
	w.count++
	return nil
}

// Write writes p to the stream.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.wr.Write(p)
	w.count += int64(n)
	return n, err
}

// Count returns the total number of bytes written so far, including bytes
// still sitting in the buffer.
func (w *Writer) Count() int64 {
	return w.count
}

// Flush forces all buffered bytes to the underlying writer.
func (w *Writer) Flush() error {
	return w.wr.Flush()
}
