// Package logging configures the zerolog logger. The terminal UI owns
// stdout, so log lines go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Setup opens path for appending and returns a logger writing to it.
//   - level: trace, debug, info, warn, error (unknown values mean info)
//   - format: "pretty" for human-readable lines, anything else for JSON
//
// The returned closer closes the log file.
func Setup(level, format, path string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level, format), f, nil
}

// New builds a logger on w.
func New(w io.Writer, level, format string) zerolog.Logger {
	if format == "pretty" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// DefaultLogPath resolves the log file path:
// $XDG_STATE_HOME/bloomquiz/bloomquiz.log, else
// ~/.local/state/bloomquiz/bloomquiz.log.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "bloomquiz", "bloomquiz.log"), nil
}
