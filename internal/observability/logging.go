// Package observability provides the logger and run metrics.
package observability

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger builds the application logger. Format "text" selects a tinted
// console handler for interactive use; anything else emits JSON.
func NewLogger(level, format string) *slog.Logger {
	lvl := parseLevel(level)

	if strings.EqualFold(format, "text") {
		h := tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		})
		return slog.New(h)
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
