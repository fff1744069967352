package pnt

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

const (
	// HeaderSize is the fixed on-wire size of the header.
	HeaderSize = 64

	// headerCRCOffset is where the checksum field starts; the checksum
	// covers every byte before it.
	headerCRCOffset = 43
)

// Magic is the 4-byte signature every PNT stream starts with ("PNT\0").
var Magic = [4]byte{0x50, 0x4E, 0x54, 0x00}

/*
Header is the fixed 64-byte preamble of a PNT stream.

-------------------------------------------------------------------------------
| magic(4) | version(3) | flags(4) | data_off(8) | index_off(8) | data_size(8)
| index_size(8) | crc(4) | reserved(17)                                       |
-------------------------------------------------------------------------------

The four offset/size fields describe byte ranges within the stream; the
codec stores whatever it is given and attaches no meaning beyond that.
Flags are an opaque bitfield reserved for the consumer. The reserved tail
is zero-filled on write and ignored on read.
*/
type Header struct {
	Major uint8
	Minor uint8
	Patch uint8

	Flags uint32

	DataOffset  uint64
	IndexOffset uint64
	DataSize    uint64
	IndexSize   uint64

	// Checksum is the CRC32 of the 43 bytes before it. It is computed
	// during encode and verified during decode; callers never set it.
	Checksum uint32
}

// Checksum computes the CRC32 used for header validation: the reflected
// 0xEDB88320 polynomial with initial register 0xFFFFFFFF and final
// complement (CRC-32/ISO-HDLC), so checksums are compatible with any
// independent implementation of the format.
func Checksum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

// encode serialises the header into its fixed 64-byte layout, computing
// and storing the checksum.
func (h *Header) encode() [HeaderSize]byte {
	var b [HeaderSize]byte

	copy(b[0:4], Magic[:])
	b[4] = h.Major
	b[5] = h.Minor
	b[6] = h.Patch
	binary.LittleEndian.PutUint32(b[7:11], h.Flags)
	binary.LittleEndian.PutUint64(b[11:19], h.DataOffset)
	binary.LittleEndian.PutUint64(b[19:27], h.IndexOffset)
	binary.LittleEndian.PutUint64(b[27:35], h.DataSize)
	binary.LittleEndian.PutUint64(b[35:43], h.IndexSize)

	h.Checksum = Checksum(b[:headerCRCOffset])
	binary.LittleEndian.PutUint32(b[43:47], h.Checksum)

	// Bytes [47,64) stay zero.
	return b
}

// decode parses and validates a 64-byte header. Magic is checked first so
// non-PNT files are rejected before any checksum work; a checksum
// mismatch after that means the file is truncated or bit-corrupted.
func (h *Header) decode(b []byte) error {
	if len(b) < HeaderSize {
		return ErrTruncated
	}
	if b[0] != Magic[0] || b[1] != Magic[1] || b[2] != Magic[2] || b[3] != Magic[3] {
		return fmt.Errorf("%w: got % X", ErrInvalidMagic, b[0:4])
	}

	stored := binary.LittleEndian.Uint32(b[43:47])
	if computed := Checksum(b[:headerCRCOffset]); stored != computed {
		return fmt.Errorf("%w: stored %08x, computed %08x", ErrChecksumMismatch, stored, computed)
	}

	h.Major = b[4]
	h.Minor = b[5]
	h.Patch = b[6]
	h.Flags = binary.LittleEndian.Uint32(b[7:11])
	h.DataOffset = binary.LittleEndian.Uint64(b[11:19])
	h.IndexOffset = binary.LittleEndian.Uint64(b[19:27])
	h.DataSize = binary.LittleEndian.Uint64(b[27:35])
	h.IndexSize = binary.LittleEndian.Uint64(b[35:43])
	h.Checksum = stored

	return nil
}
