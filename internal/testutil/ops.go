// Package testutil drives a real task store and a reference model with the
// same generated operations and compares them.
package testutil

import (
	"fmt"
	"os"
	"strings"

	"tasknote/internal/markdown"
)

// Result is the outcome of one op on one side.
//
// OK is false when the op returned an error. Wrote reports whether a save
// was attempted.
type Result struct {
	OK    bool
	Err   error
	Wrote bool
}

// Op is a behavior test operation executed against model and real store.
//
// ApplyReal runs first, so it sees the store in the state the model
// describes before the op.
type Op interface {
	ApplyModel(h *Harness) Result
	ApplyReal(h *Harness) Result
	String() string
}

func failSuffix(fail bool) string {
	if fail {
		return " (write fails)"
	}

	return ""
}

// OpAdd adds a task.
type OpAdd struct {
	Text  string
	Today bool
	Fail  bool
}

func (o OpAdd) ApplyReal(h *Harness) Result {
	return h.mutate(o.Fail, func() error { return h.Store.Add(o.Text, o.Today) })
}

func (o OpAdd) ApplyModel(h *Harness) Result {
	return h.mutateModel(o.Fail, h.Model.Add(o.Text, o.Today))
}

func (o OpAdd) String() string {
	return fmt.Sprintf("add %q today=%t%s", o.Text, o.Today, failSuffix(o.Fail))
}

// OpToggle toggles completion of the task at Pos.
type OpToggle struct {
	Pos  int
	Fail bool
}

func (o OpToggle) ApplyReal(h *Harness) Result {
	id := h.idAt(o.Pos)

	return h.mutate(o.Fail, func() error { return h.Store.ToggleCompletion(id) })
}

func (o OpToggle) ApplyModel(h *Harness) Result {
	return h.mutateModel(o.Fail, h.Model.Toggle(o.Pos))
}

func (o OpToggle) String() string {
	return fmt.Sprintf("toggle %d%s", o.Pos, failSuffix(o.Fail))
}

// OpToday toggles the today flag of the task at Pos.
type OpToday struct {
	Pos  int
	Fail bool
}

func (o OpToday) ApplyReal(h *Harness) Result {
	id := h.idAt(o.Pos)

	return h.mutate(o.Fail, func() error { return h.Store.ToggleToday(id) })
}

func (o OpToday) ApplyModel(h *Harness) Result {
	return h.mutateModel(o.Fail, h.Model.ToggleToday(o.Pos))
}

func (o OpToday) String() string {
	return fmt.Sprintf("today %d%s", o.Pos, failSuffix(o.Fail))
}

// OpUpdate replaces the text of the task at Pos.
type OpUpdate struct {
	Pos  int
	Text string
	Fail bool
}

func (o OpUpdate) ApplyReal(h *Harness) Result {
	id := h.idAt(o.Pos)

	return h.mutate(o.Fail, func() error { return h.Store.Update(id, o.Text) })
}

func (o OpUpdate) ApplyModel(h *Harness) Result {
	return h.mutateModel(o.Fail, h.Model.Update(o.Pos, o.Text))
}

func (o OpUpdate) String() string {
	return fmt.Sprintf("update %d %q%s", o.Pos, o.Text, failSuffix(o.Fail))
}

// OpDelete removes the task at Pos.
type OpDelete struct {
	Pos  int
	Fail bool
}

func (o OpDelete) ApplyReal(h *Harness) Result {
	id := h.idAt(o.Pos)

	return h.mutate(o.Fail, func() error { return h.Store.Delete(id) })
}

func (o OpDelete) ApplyModel(h *Harness) Result {
	return h.mutateModel(o.Fail, h.Model.Delete(o.Pos))
}

func (o OpDelete) String() string {
	return fmt.Sprintf("delete %d%s", o.Pos, failSuffix(o.Fail))
}

// OpExternal rewrites the current file behind the store's back and
// delivers the change event.
type OpExternal struct {
	Tasks []Task
}

func (o OpExternal) ApplyReal(h *Harness) Result {
	content := markdown.EncodeTasks(ToRecords(o.Tasks))

	err := os.WriteFile(h.Store.Path(), []byte(content), 0o644)
	if err != nil {
		return Result{Err: err}
	}

	h.Watches.Fire()

	return Result{OK: true}
}

func (o OpExternal) ApplyModel(h *Harness) Result {
	h.Model.External(o.Tasks)

	return Result{OK: true}
}

func (o OpExternal) String() string {
	parts := make([]string, 0, len(o.Tasks))
	for _, t := range o.Tasks {
		parts = append(parts, strings.TrimSuffix(markdown.EncodeTasks(ToRecords([]Task{t})), "\n"))
	}

	return fmt.Sprintf("external [%s]", strings.Join(parts, ", "))
}

// OpEvent delivers a change event without any write, like a sync tool
// touching the file. Late events from watches of earlier directories are
// delivered too and must be ignored.
type OpEvent struct{}

func (OpEvent) ApplyReal(h *Harness) Result {
	h.Watches.FireStale()
	h.Watches.Fire()

	return Result{OK: true}
}

func (OpEvent) ApplyModel(h *Harness) Result {
	h.Model.Reload()

	return Result{OK: true}
}

func (OpEvent) String() string { return "event" }

// OpReload reloads explicitly.
type OpReload struct{}

func (OpReload) ApplyReal(h *Harness) Result {
	h.Store.Load()

	return Result{OK: true}
}

func (OpReload) ApplyModel(h *Harness) Result {
	h.Model.Reload()

	return Result{OK: true}
}

func (OpReload) String() string { return "reload" }

// OpMove moves the store to the other directory.
type OpMove struct{}

func (OpMove) ApplyReal(h *Harness) Result {
	err := h.Store.SetDirectory(h.Dirs[1-h.Model.Current])

	return Result{OK: err == nil, Err: err}
}

func (OpMove) ApplyModel(h *Harness) Result {
	h.Model.Move()

	return Result{OK: true}
}

func (OpMove) String() string { return "move" }
