package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	flag "github.com/spf13/pflag"
	"github.com/zerodha/logf"

	"github.com/mr-karan/pnt/pkg/pnt"
	"github.com/mr-karan/pnt/pkg/store"
)

var (
	// Version of the build. This is injected at build-time.
	buildString = "unknown"
)

func main() {
	f := flag.NewFlagSet("pnt", flag.ContinueOnError)
	f.Usage = func() {
		fmt.Println(f.FlagUsages())
		os.Exit(0)
	}

	var (
		compilePath = f.String("compile", "", "Path to a TOML config to compile.")
		outPath     = f.String("out", "config.pnt", "Output path for the compiled store.")
		inspectPath = f.String("inspect", "", "Path to a compiled store to inspect.")
		verifyPath  = f.String("verify", "", "Path to a compiled store to verify.")
		debug       = f.Bool("debug", false, "Enable debug logging.")
		version     = f.Bool("version", false, "Show build version.")
	)
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	lo := initLogger(*debug)

	if *version {
		fmt.Println(buildString)
		return
	}

	switch {
	case *compilePath != "":
		if err := compile(lo, *compilePath, *outPath, *debug); err != nil {
			lo.Fatal("error compiling config", "path", *compilePath, "error", err)
		}
		lo.Info("compiled config", "in", *compilePath, "out", *outPath)

	case *inspectPath != "":
		if err := inspect(*inspectPath); err != nil {
			lo.Fatal("error inspecting store", "path", *inspectPath, "error", err)
		}

	case *verifyPath != "":
		if err := verify(*verifyPath); err != nil {
			lo.Fatal("store verification failed", "path", *verifyPath, "error", err)
		}
		lo.Info("store verified", "path", *verifyPath)

	default:
		fmt.Println(f.FlagUsages())
		os.Exit(1)
	}
}

// initLogger initializes logger instance.
func initLogger(debug bool) logf.Logger {
	opts := logf.Opts{EnableCaller: true}
	if debug {
		opts.Level = logf.DebugLevel
		opts.EnableColor = true
	}
	return logf.New(opts)
}

// compile loads a TOML document and compiles it to a .pnt store.
func compile(lo logf.Logger, in, out string, debug bool) error {
	ko := koanf.New(".")
	if err := ko.Load(file.Provider(in), toml.Parser()); err != nil {
		return fmt.Errorf("error loading config file: %w", err)
	}

	doc := make(map[string]pnt.Value)
	for k, raw := range ko.Raw() {
		val, err := pnt.FromNative(raw)
		if err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		doc[k] = val
		lo.Debug("converted entry", "key", k)
	}

	cfgs := []store.Config{}
	if debug {
		cfgs = append(cfgs, store.WithDebug())
	}
	return store.Compile(out, doc, cfgs...)
}

// inspect prints the header and all entries of a compiled store.
func inspect(path string) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	h := st.Header()
	fmt.Printf("version:      %d.%d.%d\n", h.Major, h.Minor, h.Patch)
	fmt.Printf("flags:        0x%08x\n", h.Flags)
	fmt.Printf("checksum:     0x%08x\n", h.Checksum)
	fmt.Printf("data section: offset %d, %d bytes\n", h.DataOffset, h.DataSize)
	fmt.Printf("index:        offset %d, %d bytes, %d entries\n", h.IndexOffset, h.IndexSize, st.Len())

	keys := st.Keys()
	sort.Strings(keys)
	for _, k := range keys {
		val, err := st.Get(k)
		if err != nil {
			return err
		}
		fmt.Printf("%s = %v\n", k, pnt.ToNative(val))
	}
	return nil
}

// verify decodes the whole data section and cross-checks it against the
// index.
func verify(path string) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.Entries()
	if err != nil {
		return err
	}
	if len(entries) != st.Len() {
		return fmt.Errorf("index has %d entries, data section has %d", st.Len(), len(entries))
	}
	for k := range entries {
		if _, err := st.Get(k); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	return nil
}
