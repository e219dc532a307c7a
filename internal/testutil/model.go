package testutil

import (
	"slices"

	"tasknote/internal/record"
)

// Task is a task without its runtime ID, as the model and the file see it.
type Task struct {
	Text      string
	Completed bool
	Today     bool
}

// FromRecords strips IDs from tasks.
func FromRecords(tasks []record.Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, Task{Text: t.Text, Completed: t.Completed, Today: t.Today})
	}

	return out
}

// ToRecords gives each task a fresh ID.
func ToRecords(tasks []Task) []record.Task {
	out := make([]record.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, record.NewTask(t.Text, t.Completed, t.Today))
	}

	return out
}

// Model is the reference task store: an in-memory list, the contents of
// the task file in each of two directories, and which directory is
// current.
//
// Mutations report whether they changed the list. They never touch Disk;
// the caller decides whether the save went through.
type Model struct {
	Memory  []Task
	Disk    [2][]Task
	Current int
}

// NewModel returns an empty model in directory 0.
func NewModel() *Model {
	return &Model{Memory: []Task{}}
}

// Len returns the number of tasks in memory.
func (m *Model) Len() int {
	return len(m.Memory)
}

// Add prepends a task. Blank text changes nothing.
func (m *Model) Add(text string, today bool) bool {
	if text == "" {
		return false
	}

	m.Memory = slices.Insert(slices.Clone(m.Memory), 0, Task{Text: text, Today: today})

	return true
}

// Toggle flips completion of the task at pos.
func (m *Model) Toggle(pos int) bool {
	return m.update(pos, func(t *Task) { t.Completed = !t.Completed })
}

// ToggleToday flips the today flag of the task at pos.
func (m *Model) ToggleToday(pos int) bool {
	return m.update(pos, func(t *Task) { t.Today = !t.Today })
}

// Update replaces the text of the task at pos. Blank text changes nothing.
func (m *Model) Update(pos int, text string) bool {
	if text == "" {
		return false
	}

	return m.update(pos, func(t *Task) { t.Text = text })
}

// Delete removes the task at pos.
func (m *Model) Delete(pos int) bool {
	if !m.valid(pos) {
		return false
	}

	m.Memory = slices.Delete(slices.Clone(m.Memory), pos, pos+1)

	return true
}

// Save writes memory to the current directory's file.
func (m *Model) Save() {
	m.Disk[m.Current] = slices.Clone(m.Memory)
}

// Reload replaces memory with the current file.
func (m *Model) Reload() {
	m.Memory = slices.Clone(m.Disk[m.Current])
	if m.Memory == nil {
		m.Memory = []Task{}
	}
}

// External replaces the current file, as another program would, and
// reloads it.
func (m *Model) External(tasks []Task) {
	m.Disk[m.Current] = slices.Clone(tasks)
	m.Reload()
}

// Move switches to the other directory and loads its file.
func (m *Model) Move() {
	m.Current = 1 - m.Current
	m.Reload()
}

func (m *Model) valid(pos int) bool {
	return pos >= 0 && pos < len(m.Memory)
}

func (m *Model) update(pos int, fn func(*Task)) bool {
	if !m.valid(pos) {
		return false
	}

	m.Memory = slices.Clone(m.Memory)
	fn(&m.Memory[pos])

	return true
}
