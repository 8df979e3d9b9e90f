package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a JSON logger writing to stdout and, when sink is non-nil, to
// sink as well.
func New(level string, sink io.Writer) *slog.Logger {
	var out io.Writer = os.Stdout
	if sink != nil {
		out = io.MultiWriter(os.Stdout, sink)
	}
	return NewWithWriter(level, out)
}

func NewWithWriter(level string, out io.Writer) *slog.Logger {
	h := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(h)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
