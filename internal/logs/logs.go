// Package logs builds the structured logger shared by the stores and the CLI.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options selects where log records go.
type Options struct {
	// File receives records at info level and above (debug with Verbose).
	// Empty disables it.
	File string

	// Verbose mirrors records, down to debug level, to Stderr.
	Verbose bool
	Stderr  io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a text logger for opts and a closer for the log file.
// With no file and no verbose output everything is discarded.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)

	if opts.File != "" {
		err := os.MkdirAll(filepath.Dir(opts.File), 0o755)
		if err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}

		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}

		writers = append(writers, f)
		closer = f
	}

	level := slog.LevelInfo

	if opts.Verbose && opts.Stderr != nil {
		writers = append(writers, opts.Stderr)
		level = slog.LevelDebug
	}

	if len(writers) == 0 {
		return slog.New(slog.DiscardHandler), closer, nil
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})

	return slog.New(handler), closer, nil
}
