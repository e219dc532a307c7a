package store

import (
	"strings"

	"tasknote/internal/markdown"
	"tasknote/internal/record"
)

// TaskFile is the task file name inside the storage directory.
const TaskFile = "tasks.md"

// TaskStore keeps tasks.md and an in-memory task list in sync.
//
// Operations addressing a task by ID do nothing when the ID is unknown.
// IDs are regenerated on every reload, so callers should re-read the
// collection after an external change.
type TaskStore struct {
	*core[record.Task]
}

// OpenTasks opens the task store for dir. The directory and an empty
// tasks.md are created if missing; failing to do so, or to start the watch,
// is logged and does not fail the open; [TaskStore.Watching] reports
// whether the watch is active.
func OpenTasks(dir string, opts ...Option) (*TaskStore, error) {
	c := newCore(format[record.Task]{
		kind:   "tasks",
		file:   TaskFile,
		encode: markdown.EncodeTasks,
		decode: markdown.DecodeTasks,
	}, opts)

	err := c.open(dir)
	if err != nil {
		return nil, err
	}

	return &TaskStore{core: c}, nil
}

// Tasks returns a copy of the task list, newest first.
func (s *TaskStore) Tasks() []record.Task {
	return s.Snapshot().Items
}

// Add prepends a new task. Line breaks in text become spaces; blank text is
// ignored.
func (s *TaskStore) Add(text string, today bool) error {
	text = taskText(text)
	if text == "" {
		return nil
	}

	return s.mutate(func(tasks []record.Task) ([]record.Task, bool) {
		return prepend(tasks, record.NewTask(text, false, today)), true
	})
}

// Update replaces the text of the task with id. Blank text is ignored.
func (s *TaskStore) Update(id, text string) error {
	text = taskText(text)
	if text == "" {
		return nil
	}

	return s.update(id, func(t record.Task) record.Task { return t.WithText(text) })
}

// ToggleCompletion flips the completion flag of the task with id.
func (s *TaskStore) ToggleCompletion(id string) error {
	return s.update(id, record.Task.Toggled)
}

// ToggleToday flips the today flag of the task with id.
func (s *TaskStore) ToggleToday(id string) error {
	return s.update(id, record.Task.ToggledToday)
}

// Delete removes the task with id.
func (s *TaskStore) Delete(id string) error {
	return s.mutate(func(tasks []record.Task) ([]record.Task, bool) {
		return removeFirst(tasks, taskID, id)
	})
}

func (s *TaskStore) update(id string, fn func(record.Task) record.Task) error {
	return s.mutate(func(tasks []record.Task) ([]record.Task, bool) {
		return replaceFirst(tasks, taskID, id, fn)
	})
}

func taskID(t record.Task) string { return t.ID }

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// taskText trims text and folds it onto one line, since a task is one line
// of tasks.md.
func taskText(text string) string {
	return strings.TrimSpace(lineBreaks.Replace(text))
}
