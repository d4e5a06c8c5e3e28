// Package logging builds the zerolog loggers used across minitask.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. Debug lowers the level from
// warn to debug.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	consoleWriter := zerolog.NewConsoleWriter()
	consoleWriter.TimeFormat = time.TimeOnly
	consoleWriter.Out = w
	consoleWriter.NoColor = true

	return zerolog.New(consoleWriter).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewServer returns a JSON logger for the HTTP server, at info level unless
// debug is set.
func NewServer(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
}
