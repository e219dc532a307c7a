// Package watch observes a single file and reports that it changed.
//
// A [File] watches the file's parent directory and filters events by name,
// so it keeps working when the file is replaced by rename (atomic writes)
// or deleted and recreated. The callback carries no data; callers re-read
// the file and must tolerate duplicate notifications.
package watch

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher is the handle the store keeps for a running watch.
type Watcher interface {
	// Restart drops the OS handle and re-establishes it on the same path.
	Restart() error

	// Stop releases the OS handle. Idempotent.
	Stop()
}

// Factory starts a watch on path that calls onChange for every change.
type Factory func(path string, onChange func()) (Watcher, error)

// NewFactory returns a [Factory] backed by fsnotify.
func NewFactory() Factory {
	return func(path string, onChange func()) (Watcher, error) {
		f, err := New(path, onChange)
		if err != nil {
			return nil, err
		}

		return f, nil
	}
}

// File is an fsnotify watch on one file path.
type File struct {
	path     string
	name     string
	onChange func()

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	done    chan struct{}
	stopped bool
}

// New starts watching path. onChange runs on the watch goroutine for writes,
// creates (including rename-over), renames away and removes of path.
//
// Returns *[UnavailableError] if path cannot be stat'ed or its directory
// cannot be watched.
func New(path string, onChange func()) (*File, error) {
	if onChange == nil {
		panic("watch: onChange is nil")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}

	f := &File{
		path:     abs,
		name:     filepath.Base(abs),
		onChange: onChange,
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	err = f.startLocked()
	if err != nil {
		f.stopped = true

		return nil, err
	}

	return f, nil
}

// Path returns the absolute path being watched.
func (f *File) Path() string {
	return f.path
}

// Restart closes the current OS handle and opens a new one on the same path.
// On failure the watch is left stopped.
func (f *File) Restart() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closeLocked()

	err := f.startLocked()
	if err != nil {
		f.stopped = true

		return err
	}

	f.stopped = false

	return nil
}

// Stop releases the OS handle. It does not wait for a callback that is
// already running.
func (f *File) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopped = true
	f.closeLocked()
}

func (f *File) startLocked() error {
	_, err := os.Stat(f.path)
	if err != nil {
		return &UnavailableError{Path: f.path, Err: err}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return &UnavailableError{Path: f.path, Err: err}
	}

	err = fsw.Add(filepath.Dir(f.path))
	if err != nil {
		_ = fsw.Close()

		return &UnavailableError{Path: f.path, Err: err}
	}

	done := make(chan struct{})
	f.fsw = fsw
	f.done = done

	go f.loop(fsw, done)

	return nil
}

func (f *File) closeLocked() {
	if f.fsw == nil {
		return
	}

	close(f.done)
	_ = f.fsw.Close()

	f.fsw = nil
	f.done = nil
}

func (f *File) loop(fsw *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}

			if !f.relevant(ev) {
				continue
			}

			select {
			case <-done:
				return
			default:
			}

			f.onChange()
		case _, ok := <-fsw.Errors:
			// Errors only mean events were dropped.
			if !ok {
				return
			}
		}
	}
}

func (f *File) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != f.name {
		return false
	}

	// Chmod alone does not change content.
	return ev.Op&^fsnotify.Chmod != 0
}

// Compile-time interface check.
var _ Watcher = (*File)(nil)
