package testutil

import (
	"errors"
	"path/filepath"
	"testing"

	"tasknote/internal/fs"
	"tasknote/internal/store"
)

var errInjectedWrite = errors.New("injected write failure")

// Harness wires together a real task store and the reference model.
//
// The store runs on a [fs.Faulty] so ops can fail single saves, and on
// [Watches] so ops decide when change events arrive.
type Harness struct {
	TB      testing.TB
	Dirs    [2]string
	FS      *fs.Faulty
	Watches *Watches
	Store   *store.TaskStore
	Model   *Model

	lastVersion uint64
}

// NewHarness opens a task store in a fresh temp directory.
func NewHarness(tb testing.TB) *Harness {
	tb.Helper()

	root := tb.TempDir()
	h := &Harness{
		TB:      tb,
		Dirs:    [2]string{filepath.Join(root, "a"), filepath.Join(root, "b")},
		FS:      fs.NewFaulty(fs.NewReal()),
		Watches: &Watches{},
		Model:   NewModel(),
	}

	s, err := store.OpenTasks(h.Dirs[0], store.WithFS(h.FS), store.WithWatchFactory(h.Watches.Factory()))
	if err != nil {
		tb.Fatalf("OpenTasks: %v", err)
	}

	tb.Cleanup(s.Close)
	h.Store = s

	return h
}

// Path returns the task file in directory i.
func (h *Harness) Path(i int) string {
	return filepath.Join(h.Dirs[i], store.TaskFile)
}

// idAt returns the store ID of the task at pos, or an unknown ID for an
// invalid position.
func (h *Harness) idAt(pos int) string {
	tasks := h.Store.Tasks()
	if pos < 0 || pos >= len(tasks) {
		return "missing"
	}

	return tasks[pos].ID
}

// mutate runs fn against the store with the write failing if fail is set.
// A save that went through is followed by the change event the OS would
// deliver for it.
func (h *Harness) mutate(fail bool, fn func() error) Result {
	if fail {
		h.FS.Fail(fs.OpWriteFileAtomic, errInjectedWrite)
		defer h.FS.Fail(fs.OpWriteFileAtomic, nil)
	}

	before := h.FS.Calls(fs.OpWriteFileAtomic)
	err := fn()
	wrote := h.FS.Calls(fs.OpWriteFileAtomic) > before

	if err == nil && wrote {
		h.Watches.Fire()
	}

	return Result{OK: err == nil, Err: err, Wrote: wrote}
}

// mutateModel applies a model change and the save outcome.
func (h *Harness) mutateModel(fail bool, changed bool) Result {
	if !changed {
		return Result{OK: true}
	}

	if fail {
		return Result{OK: false, Wrote: true}
	}

	h.Model.Save()

	return Result{OK: true, Wrote: true}
}
