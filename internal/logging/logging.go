package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. format is "console" for human readable
// output, anything else writes JSON lines.
func New(w io.Writer, level zerolog.Level, format string) zerolog.Logger {
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", "mwlkeys").Logger()
}
