package telemetry

import (
	"io"
	"log/slog"
	"os"
)

// InitSlog installs a text handler writing to stderr as the default logger.
func InitSlog(debug bool) {
	InitSlogTo(os.Stderr, debug)
}

func InitSlogTo(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
