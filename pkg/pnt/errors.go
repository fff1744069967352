package pnt

import (
	"errors"
	"io"
)

var (
	// ErrInvalidMagic means the stream doesn't start with the PNT magic bytes.
	ErrInvalidMagic = errors.New("pnt: invalid magic bytes")
	// ErrChecksumMismatch means the header CRC32 doesn't match its contents.
	ErrChecksumMismatch = errors.New("pnt: header checksum mismatch")
	// ErrUnknownTag means a value carried a type tag this codec doesn't know.
	ErrUnknownTag = errors.New("pnt: unknown type tag")
	// ErrTruncated means the stream ended while more bytes were expected.
	ErrTruncated = errors.New("pnt: truncated stream")
	// ErrUnsupportedType means a value write was requested for a host type
	// with no wire representation.
	ErrUnsupportedType = errors.New("pnt: unsupported value type")
	// ErrMaxDepth means array/object nesting exceeded the configured limit.
	ErrMaxDepth = errors.New("pnt: max nesting depth exceeded")
	// ErrLengthOverflow means a varint length ran past its maximum width.
	ErrLengthOverflow = errors.New("pnt: length overflows varint limit")
	// ErrDuplicateKey means an object carried the same key twice.
	ErrDuplicateKey = errors.New("pnt: duplicate object key")
	// ErrInvalidScale means a decimal scale outside the 0-28 range.
	ErrInvalidScale = errors.New("pnt: decimal scale out of range")
)

// eof maps end-of-stream conditions from the underlying reader to
// ErrTruncated. A value read that runs out of bytes is a truncation,
// never a short result.
func eof(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
