// Package logging builds the slog logger used by the server.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a logger writing to w. level is one of debug, info, warn or
// error (unknown values mean info); format "json" selects the JSON handler,
// anything else the text handler.
func New(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
