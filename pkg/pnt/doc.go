// Package pnt implements the PNT binary configuration format.
//
// A .pnt stream starts with a fixed 64-byte header followed by a data
// section of back-to-back tagged values and an optional index section:
//
//	--------------------------------------------------------
//	| header (64) | data section | index section           |
//	--------------------------------------------------------
//
// # Header
//
// The header layout is fixed and little-endian throughout:
//
//	[0,4)   magic "PNT\0" (50 4E 54 00)
//	[4,7)   version major, minor, patch (one byte each)
//	[7,11)  flags, u32
//	[11,19) data offset, u64
//	[19,27) index offset, u64
//	[27,35) data size, u64
//	[35,43) index size, u64
//	[43,47) CRC32 (IEEE) of bytes [0,43)
//	[47,64) reserved, zero-filled on write and ignored on read
//
// The magic bytes are checked before the checksum so non-PNT files fail
// fast without a CRC pass.
//
// # Values
//
// Every value on the wire is one type-tag byte followed by its payload.
// Fixed-width payloads (integers, floats, timestamps) are little-endian.
// Variable-width payloads (strings, byte arrays) carry a varint byte
// length first. Arrays carry a varint element count followed by each
// element as a full tagged value; objects carry a varint entry count
// followed by (varint key length, key bytes, tagged value) per entry.
// Unknown tags are a fatal decode error: payload lengths for unknown
// tags can't be known, so skipping is unsafe.
//
// Timestamps and durations count 100-nanosecond ticks; timestamp ticks
// are relative to the Unix epoch. Decimals are the raw 128-bit layout of
// .NET decimal.GetBits (low, mid, high, flags words).
//
// The codec exposes read-one-value / write-one-value primitives; where
// one top-level value ends and the next begins is the caller's contract,
// bounded by the header's data size.
package pnt
