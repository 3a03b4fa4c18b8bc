// Package logging builds the process slog.Logger on top of zerolog.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog"
)

// ParseLevel maps a config value to a slog level. Unknown values are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New returns a logger writing to w. format "json" emits one JSON object
// per line; anything else uses zerolog's console writer with caller info.
func New(level, format string, w io.Writer) *slog.Logger {
	var zl zerolog.Logger
	if format == "json" {
		zl = zerolog.New(w)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Caller().Logger()
	}

	h := slogzerolog.Option{
		Level:  ParseLevel(level),
		Logger: &zl,
	}.NewZerologHandler()
	return slog.New(h)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// OrDefault returns l, or slog.Default() when l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
