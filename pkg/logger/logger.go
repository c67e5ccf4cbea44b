package logger

import (
	"io"
	"log/slog"
	"os"
)

// Log discards until Init points it at a real sink, so library code can
// log unconditionally.
var Log = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Init routes logs to the named file. The console owns the terminal, so
// stdout is never a valid sink; an unopenable path keeps the discard
// handler rather than corrupting the display.
func Init(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	Log = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
