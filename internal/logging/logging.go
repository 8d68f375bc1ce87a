package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options configures the file logger.
type Options struct {
	// Path is the log file. Empty uses DefaultPath.
	Path  string
	Debug bool
}

// DefaultPath returns the log file location.
// Precedence: FUNCDRILL_LOG > $XDG_STATE_HOME/funcdrill/funcdrill.log >
// ~/.local/state/funcdrill/funcdrill.log.
func DefaultPath() (string, error) {
	if p := os.Getenv("FUNCDRILL_LOG"); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "funcdrill", "funcdrill.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "funcdrill", "funcdrill.log"), nil
}

// Open creates a text logger appending to the configured file. The TUI owns
// stdout, so logs never go to the terminal. Close the returned closer on exit.
func Open(opts Options) (*slog.Logger, io.Closer, error) {
	path := opts.Path
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return New(f, opts.Debug), f, nil
}

// New builds a text logger on w at Info, or Debug when debug is set.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
