package store_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"tasknote/internal/store"
	"tasknote/internal/watch"
)

// fakeWatch is a watch whose callback is fired by the test.
type fakeWatch struct {
	path     string
	onChange func()

	mu         sync.Mutex
	stopped    bool
	restarts   int
	restartErr error
}

func (w *fakeWatch) Restart() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.restarts++

	if w.restartErr != nil {
		w.stopped = true

		return w.restartErr
	}

	w.stopped = false

	return nil
}

func (w *fakeWatch) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopped = true
}

// Fire invokes the callback even after Stop, like a late OS event would.
func (w *fakeWatch) Fire() {
	w.onChange()
}

func (w *fakeWatch) Stopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.stopped
}

func (w *fakeWatch) Restarts() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.restarts
}

type fakeWatches struct {
	mu  sync.Mutex
	all []*fakeWatch
	err error
}

func (f *fakeWatches) Factory() watch.Factory {
	return func(path string, onChange func()) (watch.Watcher, error) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.err != nil {
			return nil, &watch.UnavailableError{Path: path, Err: f.err}
		}

		w := &fakeWatch{path: path, onChange: onChange}
		f.all = append(f.all, w)

		return w, nil
	}
}

func (f *fakeWatches) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.err = err
}

func (f *fakeWatches) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.all)
}

func (f *fakeWatches) Last(t *testing.T) *fakeWatch {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.all) == 0 {
		t.Fatal("no watch started")
	}

	return f.all[len(f.all)-1]
}

// recorder collects every snapshot a store publishes.
type recorder[T any] struct {
	mu    sync.Mutex
	snaps []store.Snapshot[T]
}

func (r *recorder[T]) add(s store.Snapshot[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snaps = append(r.snaps, s)
}

func (r *recorder[T]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.snaps)
}

func (r *recorder[T]) Last() store.Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.snaps) == 0 {
		return store.Snapshot[T]{}
	}

	return r.snaps[len(r.snaps)-1]
}

type subscriber[T any] interface {
	Subscribe(fn func(store.Snapshot[T])) func()
}

func recordSnapshots[T any](t *testing.T, s subscriber[T]) *recorder[T] {
	t.Helper()

	r := &recorder[T]{}
	unsubscribe := s.Subscribe(r.add)
	t.Cleanup(unsubscribe)

	return r
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return string(data)
}

func openTasks(t *testing.T, dir string, opts ...store.Option) *store.TaskStore {
	t.Helper()

	s, err := store.OpenTasks(dir, opts...)
	if err != nil {
		t.Fatalf("OpenTasks: %v", err)
	}

	t.Cleanup(s.Close)

	return s
}

func openNotes(t *testing.T, dir string, opts ...store.Option) *store.NoteStore {
	t.Helper()

	s, err := store.OpenNotes(dir, opts...)
	if err != nil {
		t.Fatalf("OpenNotes: %v", err)
	}

	t.Cleanup(s.Close)

	return s
}

func taskTexts(s *store.TaskStore) []string {
	tasks := s.Tasks()
	out := make([]string, 0, len(tasks))

	for _, task := range tasks {
		out = append(out, task.Text)
	}

	return out
}

func tasksPath(dir string) string {
	return filepath.Join(dir, store.TaskFile)
}
