// Package obslog provides the process-wide structured logger. It
// replaces a globals.go pair of *log.Logger values (InfoLog, ErrorLog)
// with a single leveled github.com/rs/zerolog logger built once in
// main and threaded down explicitly, grounded on neper-stars-houston's
// log/zerolog.go adapter.
package obslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a console-friendly logger at the given level, writing to
// w (os.Stderr in production, a buffer in tests).
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Default returns a plain stderr logger at info level, used by code
// paths (tests, small tools) that do not thread a logger through.
func Default() zerolog.Logger {
	return New(os.Stderr, "info")
}
