package logging

import (
	"io"
	"log/slog"
	"os"
)

// NewJSONHandler is the stdout handler every deployment uses.
func NewJSONHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}

// Setup initializes the global slog logger with JSON output to stdout. Extra
// handlers, such as a DBHandler, receive the same records.
func Setup(extra ...slog.Handler) {
	var handler slog.Handler = NewJSONHandler(os.Stdout)
	if len(extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, extra...)...)
	}
	slog.SetDefault(slog.New(handler))
}
