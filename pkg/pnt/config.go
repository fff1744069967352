package pnt

import (
	"fmt"

	"github.com/mr-karan/pnt/internal/stream"
)

const (
	defaultMaxDepth   = 64
	defaultBufferSize = stream.DefaultBufferSize
)

// Options represents configuration options for a reader or writer.
type Options struct {
	maxDepth   int // Max array/object nesting depth before a decode/encode fails.
	bufferSize int // Size of the internal stream buffer in bytes.
}

// Config is a function on the Options for the codec.
// These are used to configure particular options.
type Config func(*Options) error

func DefaultOptions() *Options {
	return &Options{
		maxDepth:   defaultMaxDepth,
		bufferSize: defaultBufferSize,
	}
}

// WithMaxDepth caps array/object nesting. Adversarial input with
// unbounded nesting fails with ErrMaxDepth instead of exhausting the
// stack.
func WithMaxDepth(depth int) Config {
	return func(o *Options) error {
		if depth < 1 {
			return fmt.Errorf("max depth must be at least 1, got %d", depth)
		}
		o.maxDepth = depth
		return nil
	}
}

// WithBufferSize sets the internal buffer size. Any size of at least one
// byte decodes identically; larger buffers just mean fewer calls into the
// underlying stream.
func WithBufferSize(size int) Config {
	return func(o *Options) error {
		if size < 1 {
			return fmt.Errorf("buffer size must be at least 1 byte, got %d", size)
		}
		o.bufferSize = size
		return nil
	}
}
