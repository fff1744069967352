package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mr-karan/pnt/pkg/pnt"
)

func testDoc() map[string]pnt.Value {
	return map[string]pnt.Value{
		"name":    pnt.String("svc"),
		"port":    pnt.Uint16(8080),
		"enabled": pnt.Bool(true),
		"timeout": pnt.DurationOf(30 * time.Second),
		"limits": pnt.Object{
			"max_conns": pnt.Int32(512),
			"rates":     pnt.Array{pnt.Float64(0.5), pnt.Float64(0.9)},
		},
		"nothing": pnt.Null{},
	}
}

func TestCompileAndOpen(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	tmpDir, err := os.MkdirTemp("", "pnt")
	defer os.RemoveAll(tmpDir)
	assert.NoError(err)

	path := filepath.Join(tmpDir, "config.pnt")
	doc := testDoc()

	assert.NoError(Compile(path, doc))

	// The lockfile must be gone once the compile finishes.
	assert.False(exists(path + LockSuffix))

	st, err := Open(path)
	assert.NoError(err)
	defer st.Close()

	t.Run("Header", func(t *testing.T) {
		h := st.Header()
		assert.Equal(uint8(FormatMajor), h.Major)
		assert.Equal(uint64(pnt.HeaderSize), h.DataOffset)
		assert.Equal(h.DataOffset+h.DataSize, h.IndexOffset)
		assert.NotZero(h.IndexSize)
	})

	t.Run("Get", func(t *testing.T) {
		for k, want := range doc {
			got, err := st.Get(k)
			assert.NoError(err, "key %q", k)
			assert.Equal(want, got, "key %q", k)
		}
	})

	t.Run("Get_Missing", func(t *testing.T) {
		_, err := st.Get("no-such-key")
		assert.ErrorIs(err, ErrKeyNotFound)
	})

	t.Run("Keys_Len", func(t *testing.T) {
		assert.Equal(len(doc), st.Len())
		assert.ElementsMatch(
			[]string{"name", "port", "enabled", "timeout", "limits", "nothing"},
			st.Keys(),
		)
	})

	t.Run("Entries", func(t *testing.T) {
		entries, err := st.Entries()
		assert.NoError(err)
		assert.Equal(doc, entries)
	})
}

func TestCompileDeterministic(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	tmpDir, err := os.MkdirTemp("", "pnt")
	defer os.RemoveAll(tmpDir)
	assert.NoError(err)

	pathA := filepath.Join(tmpDir, "a.pnt")
	pathB := filepath.Join(tmpDir, "b.pnt")
	assert.NoError(Compile(pathA, testDoc()))
	assert.NoError(Compile(pathB, testDoc()))

	a, err := os.ReadFile(pathA)
	assert.NoError(err)
	b, err := os.ReadFile(pathB)
	assert.NoError(err)
	assert.Equal(a, b)
}

func TestCompileEmptyKey(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	tmpDir, err := os.MkdirTemp("", "pnt")
	defer os.RemoveAll(tmpDir)
	assert.NoError(err)

	err = Compile(filepath.Join(tmpDir, "bad.pnt"), map[string]pnt.Value{
		"": pnt.Null{},
	})
	assert.ErrorIs(err, ErrEmptyKey)
}

func TestCompileLocked(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	tmpDir, err := os.MkdirTemp("", "pnt")
	defer os.RemoveAll(tmpDir)
	assert.NoError(err)

	path := filepath.Join(tmpDir, "config.pnt")

	// Simulate a concurrent compile holding the lock.
	flockF, err := createFlockFile(path + LockSuffix)
	assert.NoError(err)

	err = Compile(path, testDoc())
	assert.ErrorIs(err, ErrLocked)

	assert.NoError(destroyFlockFile(flockF))
	assert.NoError(Compile(path, testDoc()))
}

func TestOpenCorrupted(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	tmpDir, err := os.MkdirTemp("", "pnt")
	defer os.RemoveAll(tmpDir)
	assert.NoError(err)

	path := filepath.Join(tmpDir, "config.pnt")
	assert.NoError(Compile(path, testDoc()))

	raw, err := os.ReadFile(path)
	assert.NoError(err)

	t.Run("BadMagic", func(t *testing.T) {
		corrupted := make([]byte, len(raw))
		copy(corrupted, raw)
		corrupted[0] = 'X'

		bad := filepath.Join(tmpDir, "bad_magic.pnt")
		assert.NoError(os.WriteFile(bad, corrupted, 0644))

		_, err := Open(bad)
		assert.ErrorIs(err, pnt.ErrInvalidMagic)
	})

	t.Run("FlippedHeaderBit", func(t *testing.T) {
		corrupted := make([]byte, len(raw))
		copy(corrupted, raw)
		corrupted[12] ^= 0x01 // inside data_offset

		bad := filepath.Join(tmpDir, "bad_crc.pnt")
		assert.NoError(os.WriteFile(bad, corrupted, 0644))

		_, err := Open(bad)
		assert.ErrorIs(err, pnt.ErrChecksumMismatch)
	})

	t.Run("NotAPNTFile", func(t *testing.T) {
		bad := filepath.Join(tmpDir, "not_pnt.pnt")
		assert.NoError(os.WriteFile(bad, []byte("plain text, nothing more"), 0644))

		_, err := Open(bad)
		assert.Error(err)
	})
}

func TestOpenEmptyDoc(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	tmpDir, err := os.MkdirTemp("", "pnt")
	defer os.RemoveAll(tmpDir)
	assert.NoError(err)

	path := filepath.Join(tmpDir, "empty.pnt")
	assert.NoError(Compile(path, map[string]pnt.Value{}))

	st, err := Open(path)
	assert.NoError(err)
	defer st.Close()

	assert.Equal(0, st.Len())
	entries, err := st.Entries()
	assert.NoError(err)
	assert.Empty(entries)
}
