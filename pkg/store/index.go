package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/mr-karan/pnt/pkg/pnt"
)

// indexEntry locates one compiled entry inside the file: the absolute
// byte offset of its key value and the total size of key plus value.
type indexEntry struct {
	Offset uint64
	Size   uint64
}

// index maps entry keys to their byte ranges so a reader can fetch one
// entry with a single positioned read instead of decoding the whole
// data section.
type index map[string]indexEntry

// encode serialises the index section: a varint entry count, then per
// entry a varint key length, the key bytes, and two u64s (offset, size).
// Entries are written in key order for deterministic output.
func (ix index) encode() ([]byte, error) {
	var buf bytes.Buffer

	if err := pnt.WriteLength(&buf, uint64(len(ix))); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(ix))
	for k := range ix {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var scratch [8]byte
	for _, k := range keys {
		if err := pnt.WriteLength(&buf, uint64(len(k))); err != nil {
			return nil, err
		}
		buf.WriteString(k)

		entry := ix[k]
		binary.LittleEndian.PutUint64(scratch[:], entry.Offset)
		buf.Write(scratch[:])
		binary.LittleEndian.PutUint64(scratch[:], entry.Size)
		buf.Write(scratch[:])
	}

	return buf.Bytes(), nil
}

// decodeIndex parses an index section.
func decodeIndex(b []byte) (index, error) {
	rd := bytes.NewReader(b)

	count, err := pnt.ReadLength(rd)
	if err != nil {
		return nil, fmt.Errorf("error reading index count: %w", err)
	}

	ix := make(index, count)
	var scratch [16]byte
	for i := uint64(0); i < count; i++ {
		klen, err := pnt.ReadLength(rd)
		if err != nil {
			return nil, fmt.Errorf("error reading index key length: %w", err)
		}
		key := make([]byte, klen)
		if _, err := io.ReadFull(rd, key); err != nil {
			return nil, fmt.Errorf("error reading index key: %w", pnt.ErrTruncated)
		}
		if _, err := io.ReadFull(rd, scratch[:]); err != nil {
			return nil, fmt.Errorf("error reading index entry: %w", pnt.ErrTruncated)
		}
		ix[string(key)] = indexEntry{
			Offset: binary.LittleEndian.Uint64(scratch[0:8]),
			Size:   binary.LittleEndian.Uint64(scratch[8:16]),
		}
	}

	return ix, nil
}
