package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"tasknote/internal/config"
	"tasknote/internal/store"
)

var (
	errPositionRequired = errors.New("position is required")
	errInvalidPosition  = errors.New("position must be a positive number")
	errNoSuchPosition   = errors.New("no item at position")
	errTextRequired     = errors.New("text is required")
	errTooManyArgs      = errors.New("too many arguments")
)

// app carries what commands need once global flags and config are loaded.
type app struct {
	cfg        config.Config
	configPath string
	env        map[string]string
	stdin      io.Reader
	errOut     io.Writer
	logger     *slog.Logger
}

func (a *app) storeOptions() []store.Option {
	return []store.Option{store.WithLogger(a.logger)}
}

func (a *app) openTasks() (*store.TaskStore, error) {
	return store.OpenTasks(a.cfg.DirectoryAbs, a.storeOptions()...)
}

func (a *app) openNotes() (*store.NoteStore, error) {
	return store.OpenNotes(a.cfg.DirectoryAbs, a.storeOptions()...)
}

// openBoth opens both stores and returns a func closing them.
func (a *app) openBoth() (*store.TaskStore, *store.NoteStore, func(), error) {
	tasks, err := a.openTasks()
	if err != nil {
		return nil, nil, nil, err
	}

	notes, err := a.openNotes()
	if err != nil {
		tasks.Close()

		return nil, nil, nil, err
	}

	return tasks, notes, func() {
		notes.Close()
		tasks.Close()
	}, nil
}

// settingsPath is where the dir command persists the storage directory:
// the explicit -c file if given, otherwise the global config.
func (a *app) settingsPath() string {
	if a.cfg.Sources.File != "" {
		return a.cfg.Sources.File
	}

	return config.GlobalPath(a.env)
}

// parsePosition turns a 1-based position argument into an index into a
// collection of count items.
func parsePosition(arg string, count int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", errInvalidPosition, arg)
	}

	if n > count {
		return 0, fmt.Errorf("%w %d (have %d)", errNoSuchPosition, n, count)
	}

	return n - 1, nil
}

func positionArg(args []string) (string, error) {
	if len(args) == 0 {
		return "", errPositionRequired
	}

	if len(args) > 1 {
		return "", errTooManyArgs
	}

	return args[0], nil
}
