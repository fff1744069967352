package main

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/redcon"

	"github.com/mr-karan/pnt/pkg/pnt"
)

func (app *App) ping(conn redcon.Conn, cmd redcon.Command) {
	conn.WriteString("PONG")
}

func (app *App) quit(conn redcon.Conn, cmd redcon.Command) {
	conn.WriteString("OK")
	conn.Close()
}

func (app *App) get(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 2 {
		conn.WriteError("ERR wrong number of arguments for '" + string(cmd.Args[0]) + "' command")
		return
	}
	var (
		key = string(cmd.Args[1])
	)
	val, err := app.store.Get(key)
	if err != nil {
		conn.WriteString(fmt.Sprintf("ERR: %s", err))
		return
	}

	// Render the value as JSON so nested objects/arrays stay readable
	// over the wire.
	out, err := json.Marshal(pnt.ToNative(val))
	if err != nil {
		conn.WriteString(fmt.Sprintf("ERR: %s", err))
		return
	}

	conn.WriteBulk(out)
}

func (app *App) keys(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 1 {
		conn.WriteError("ERR wrong number of arguments for '" + string(cmd.Args[0]) + "' command")
		return
	}

	keys := app.store.Keys()
	conn.WriteArray(len(keys))
	for _, k := range keys {
		conn.WriteBulkString(k)
	}
}

func (app *App) info(conn redcon.Conn, cmd redcon.Command) {
	h := app.store.Header()
	conn.WriteString(fmt.Sprintf(
		"version:%d.%d.%d flags:0x%08x entries:%d data_size:%d index_size:%d checksum:0x%08x",
		h.Major, h.Minor, h.Patch, h.Flags, app.store.Len(), h.DataSize, h.IndexSize, h.Checksum))
}
