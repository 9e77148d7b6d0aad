package logging

import (
	"io"
	"log/slog"

	"github.com/rs/zerolog"
)

// NewComponentLogger builds the zerolog.Logger handed to the database and
// influx managers, at the same level as the slog setup.
func NewComponentLogger(w io.Writer, level slog.Level, component string) zerolog.Logger {
	if w == nil {
		w = osStdout
	}
	return zerolog.New(w).
		Level(zerologLevel(level)).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level <= slog.LevelDebug:
		return zerolog.DebugLevel
	case level <= slog.LevelInfo:
		return zerolog.InfoLevel
	case level <= slog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
