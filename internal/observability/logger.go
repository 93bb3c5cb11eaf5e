package observability

import (
	"io"
	"log/slog"
)

// NewCLILogger returns a text logger writing to w, for command-line tools
// whose stdout carries command output. Services use sharedobs.NewLogger,
// which always writes to stdout. Unknown levels read as info.
func NewCLILogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
