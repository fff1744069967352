package store

// Options represents configuration options for compiling and opening
// a store.
type Options struct {
	debug       bool   // Enable debug logging.
	alwaysFSync bool   // Flush filesystem buffer after the compile finishes.
	flags       uint32 // Opaque header flags carried through to the file.
}

// Config is a function on the Options for the store.
// These are used to configure particular options.
type Config func(*Options) error

func DefaultOptions() *Options {
	return &Options{
		debug:       false,
		alwaysFSync: true,
		flags:       0,
	}
}

func WithDebug() Config {
	return func(o *Options) error {
		o.debug = true
		return nil
	}
}

func WithNoSync() Config {
	return func(o *Options) error {
		o.alwaysFSync = false
		return nil
	}
}

func WithFlags(flags uint32) Config {
	return func(o *Options) error {
		o.flags = flags
		return nil
	}
}
