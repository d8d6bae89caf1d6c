// Package logging builds the zerolog logger used across csvtolite.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "time"
}

// LevelFor maps the -v count to a level: warnings by default, then info,
// debug and trace.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity >= 3:
		return zerolog.TraceLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	}
	return zerolog.WarnLevel
}

// New returns a logger writing to w at the level for verbosity. Pretty output
// uses the console writer instead of JSON lines.
func New(w io.Writer, verbosity int, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(LevelFor(verbosity)).With().Timestamp().Logger()
}
