// Package logging builds the zerolog logger. The TUI owns the terminal, so
// log lines go to a file instead of stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// DefaultPath returns <user cache dir>/clinicdash/clinicdash.log, or a path
// in the working directory when no cache dir is available.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "clinicdash.log"
	}
	return filepath.Join(dir, "clinicdash", "clinicdash.log")
}

// Open creates (or appends to) the log file at path and returns a logger at
// the given level. The returned closer closes the file.
func Open(path, level string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		path = DefaultPath()
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("parse log level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, lvl), f, nil
}

// New returns a timestamped logger writing JSON lines to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Console returns a human-readable logger for non-TUI commands.
func Console(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
