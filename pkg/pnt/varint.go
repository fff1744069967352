package pnt

import "io"

// Lengths (string/byte-array sizes, collection counts) are encoded as
// little-endian base-128 varints: seven data bits per byte, high bit set
// on every byte except the last. A length of zero is a single zero byte.
//
// Decoding is capped at five groups (35 bits). The format never needs
// lengths beyond 2^32-1, and the cap stops malformed streams from
// claiming absurd lengths.
const maxLengthGroups = 5

// WriteLength encodes a non-negative length to w.
func WriteLength(w io.ByteWriter, n uint64) error {
	for n >= 0x80 {
		if err := w.WriteByte(byte(n) | 0x80); err != nil {
			return err
		}
		n >>= 7
	}
	return w.WriteByte(byte(n))
}

// ReadLength decodes a varint length from r. It fails with
// ErrLengthOverflow once a fifth continuation byte is seen, and with
// ErrTruncated if the stream ends mid-varint.
func ReadLength(r io.ByteReader) (uint64, error) {
	var (
		n     uint64
		shift uint
	)
	for i := 0; i < maxLengthGroups; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, eof(err)
		}
		n |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return n, nil
		}
		shift += 7
	}
	return 0, ErrLengthOverflow
}
