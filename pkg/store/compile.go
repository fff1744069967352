package store

import (
	"fmt"
	"os"
	"sort"

	"github.com/mr-karan/pnt/pkg/pnt"
	"github.com/zerodha/logf"
)

// Compile writes doc to a .pnt file at path. Each top-level entry goes
// out as a tagged string key followed by its tagged value, and an index
// section mapping keys to byte ranges is appended after the data section.
//
// The header is written twice: once with placeholder offsets so the data
// section can start at its fixed position, and once more after the final
// sizes are known. A lockfile next to the output prevents two concurrent
// compiles from interleaving writes.
func Compile(path string, doc map[string]pnt.Value, cfgs ...Config) error {
	opts := DefaultOptions()
	for _, cfg := range cfgs {
		if err := cfg(opts); err != nil {
			return fmt.Errorf("error applying config: %w", err)
		}
	}

	lo := initLogger(opts.debug)

	for k := range doc {
		if k == "" {
			return ErrEmptyKey
		}
	}

	// Check if a lockfile already exists.
	lockPath := path + LockSuffix
	if exists(lockPath) {
		return ErrLocked
	}
	flockF, err := createFlockFile(lockPath)
	if err != nil {
		return fmt.Errorf("error creating lockfile: %w", err)
	}
	defer func() {
		if err := destroyFlockFile(flockF); err != nil {
			lo.Error("error destroying lock file", "error", err)
		}
	}()

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening file for writing: %w", err)
	}
	defer f.Close()

	w, err := pnt.NewWriter(f)
	if err != nil {
		return err
	}

	// Placeholder header. Offsets and sizes are back-patched below once
	// the data and index sections are on disk.
	header := pnt.Header{
		Major: FormatMajor,
		Minor: FormatMinor,
		Patch: FormatPatch,
		Flags: opts.flags,
	}
	if err := w.WriteHeader(&header); err != nil {
		return err
	}

	// Write entries in key order so the same document always compiles to
	// the same bytes.
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ix := make(index, len(doc))
	for _, k := range keys {
		start := w.Count()
		if err := w.WriteValue(pnt.String(k)); err != nil {
			return fmt.Errorf("error writing key %q: %w", k, err)
		}
		if err := w.WriteValue(doc[k]); err != nil {
			return fmt.Errorf("error writing value for key %q: %w", k, err)
		}
		ix[k] = indexEntry{
			Offset: uint64(start),
			Size:   uint64(w.Count() - start),
		}
		lo.Debug("compiled entry", "key", k, "offset", start, "size", w.Count()-start)
	}

	dataSize := uint64(w.Count()) - pnt.HeaderSize

	indexBytes, err := ix.encode()
	if err != nil {
		return fmt.Errorf("error encoding index: %w", err)
	}
	if _, err := w.Write(indexBytes); err != nil {
		return fmt.Errorf("error writing index: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("error flushing file: %w", err)
	}

	// Back-patch the header now that final sizes are known.
	header.DataOffset = pnt.HeaderSize
	header.DataSize = dataSize
	header.IndexOffset = pnt.HeaderSize + dataSize
	header.IndexSize = uint64(len(indexBytes))

	if _, err := f.Seek(0, 0); err != nil {
		return fmt.Errorf("error seeking to header: %w", err)
	}
	hw, err := pnt.NewWriter(f)
	if err != nil {
		return err
	}
	if err := hw.WriteHeader(&header); err != nil {
		return fmt.Errorf("error rewriting header: %w", err)
	}
	if err := hw.Flush(); err != nil {
		return fmt.Errorf("error flushing header: %w", err)
	}

	// Ensure filesystem's in memory buffer is flushed to disk.
	if opts.alwaysFSync {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("error syncing file to disk: %w", err)
		}
	}

	lo.Debug("compiled store", "path", path, "entries", len(doc), "data_size", dataSize, "index_size", len(indexBytes))
	return nil
}

// initLogger initializes logger instance.
func initLogger(debug bool) logf.Logger {
	opts := logf.Opts{EnableCaller: true}
	if debug {
		opts.Level = logf.DebugLevel
	}
	return logf.New(opts)
}
