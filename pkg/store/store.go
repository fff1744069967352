package store

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mr-karan/pnt/pkg/pnt"
	"github.com/zerodha/logf"
)

const (
	// LockSuffix is appended to the store path to form its lockfile.
	LockSuffix = ".lock"

	// Format version written into compiled headers.
	FormatMajor = 1
	FormatMinor = 0
	FormatPatch = 0
)

// Store is a read-only view over a compiled .pnt file. The header is
// validated once at open; lookups go through the index section with a
// single positioned read per entry.
type Store struct {
	sync.Mutex

	lo     logf.Logger
	f      *os.File
	header pnt.Header
	ix     index
}

// Open opens and validates a compiled .pnt file.
func Open(path string, cfgs ...Config) (*Store, error) {
	opts := DefaultOptions()
	for _, cfg := range cfgs {
		if err := cfg(opts); err != nil {
			return nil, fmt.Errorf("error applying config: %w", err)
		}
	}

	lo := initLogger(opts.debug)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file for reading: %w", err)
	}

	// Validate the header first; a non-PNT or corrupted file is rejected
	// before anything else is read.
	hr, err := pnt.NewReader(io.NewSectionReader(f, 0, pnt.HeaderSize))
	if err != nil {
		f.Close()
		return nil, err
	}
	header, err := hr.ReadHeader()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	// Load the index section.
	ix := index{}
	if header.IndexSize > 0 {
		indexBytes := make([]byte, header.IndexSize)
		if _, err := f.ReadAt(indexBytes, int64(header.IndexOffset)); err != nil {
			f.Close()
			return nil, fmt.Errorf("error reading index section: %w", err)
		}
		ix, err = decodeIndex(indexBytes)
		if err != nil {
			f.Close()
			return nil, err
		}
	}

	lo.Debug("opened store", "path", path, "entries", len(ix), "data_size", header.DataSize)

	return &Store{
		lo:     lo,
		f:      f,
		header: header,
		ix:     ix,
	}, nil
}

// Header returns the validated file header.
func (s *Store) Header() pnt.Header {
	return s.header
}

// Get looks up one entry by key. The index gives the entry's byte range,
// so only that slice of the data section is read and decoded.
func (s *Store) Get(k string) (pnt.Value, error) {
	s.Lock()
	defer s.Unlock()

	meta, ok := s.ix[k]
	if !ok {
		return nil, ErrKeyNotFound
	}

	s.lo.Debug("fetching entry", "key", k, "offset", meta.Offset, "size", meta.Size)

	r, err := pnt.NewReader(io.NewSectionReader(s.f, int64(meta.Offset), int64(meta.Size)))
	if err != nil {
		return nil, err
	}

	keyVal, err := r.ReadValue()
	if err != nil {
		return nil, fmt.Errorf("error decoding entry key: %w", err)
	}
	storedKey, ok := keyVal.(pnt.String)
	if !ok || string(storedKey) != k {
		return nil, ErrKeyMismatch
	}

	val, err := r.ReadValue()
	if err != nil {
		return nil, fmt.Errorf("error decoding entry value: %w", err)
	}

	return val, nil
}

// Keys returns the list of all keys.
func (s *Store) Keys() []string {
	s.Lock()
	defer s.Unlock()

	keys := make([]string, 0, len(s.ix))
	for k := range s.ix {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the total number of entries.
func (s *Store) Len() int {
	s.Lock()
	defer s.Unlock()

	return len(s.ix)
}

// Entries decodes the whole data section sequentially, without touching
// the index: values are read back-to-back until the header's data size
// is consumed. This is also how the file is verified end to end.
func (s *Store) Entries() (map[string]pnt.Value, error) {
	s.Lock()
	defer s.Unlock()

	r, err := pnt.NewReader(io.NewSectionReader(s.f, int64(s.header.DataOffset), int64(s.header.DataSize)))
	if err != nil {
		return nil, err
	}

	out := make(map[string]pnt.Value, len(s.ix))
	for uint64(r.Count()) < s.header.DataSize {
		keyVal, err := r.ReadValue()
		if err != nil {
			return nil, fmt.Errorf("error decoding entry key: %w", err)
		}
		key, ok := keyVal.(pnt.String)
		if !ok {
			return nil, fmt.Errorf("entry key is not a string: got tag 0x%02X", pnt.TagOf(keyVal))
		}
		val, err := r.ReadValue()
		if err != nil {
			return nil, fmt.Errorf("error decoding value for key %q: %w", key, err)
		}
		out[string(key)] = val
	}

	return out, nil
}

// Close closes the file descriptor of the underlying store file.
func (s *Store) Close() error {
	s.Lock()
	defer s.Unlock()

	return s.f.Close()
}
