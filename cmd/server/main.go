package main

import (
	"github.com/tidwall/redcon"

	"github.com/mr-karan/pnt/pkg/store"
)

var (
	// Version of the build. This is injected at build-time.
	buildString = "unknown"
)

// App is the server context shared by all handlers.
type App struct {
	store *store.Store
}

func main() {
	ko, err := initConfig()
	if err != nil {
		panic(err)
	}

	lo := initLogger(ko)

	cfgs := []store.Config{}
	if ko.String("app.log") == "debug" {
		cfgs = append(cfgs, store.WithDebug())
	}

	st, err := store.Open(ko.MustString("app.store"), cfgs...)
	if err != nil {
		lo.Fatal("error opening store", "error", err)
	}
	defer st.Close()

	app := &App{
		store: st,
	}

	mux := redcon.NewServeMux()
	mux.HandleFunc("ping", app.ping)
	mux.HandleFunc("quit", app.quit)
	mux.HandleFunc("get", app.get)
	mux.HandleFunc("keys", app.keys)
	mux.HandleFunc("info", app.info)

	addr := ko.String("server.address")
	if addr == "" {
		addr = ":6380"
	}

	lo.Info("serving compiled config", "addr", addr, "entries", st.Len(), "version", buildString)
	if err := redcon.ListenAndServe(addr,
		mux.ServeRESP,
		func(conn redcon.Conn) bool {
			// use this function to accept or deny the connection.
			return true
		},
		func(conn redcon.Conn, err error) {
			// this is called when the connection has been closed
		},
	); err != nil {
		lo.Fatal("error starting server", "error", err)
	}
}
