package record

import "time"

// Task is a single checklist entry.
//
// Tasks are values: every change produces a new Task through one of the With
// methods, and ID and CreatedAt survive all of them.
type Task struct {
	ID        string
	Text      string
	Completed bool
	Today     bool
	CreatedAt time.Time
}

// NewTask returns a task with a fresh ID created now.
func NewTask(text string, completed, today bool) Task {
	return Task{
		ID:        NewID(),
		Text:      text,
		Completed: completed,
		Today:     today,
		CreatedAt: time.Now(),
	}
}

// WithText returns a copy of t with the text replaced.
func (t Task) WithText(text string) Task {
	t.Text = text

	return t
}

// WithCompleted returns a copy of t with the completion flag set to completed.
func (t Task) WithCompleted(completed bool) Task {
	t.Completed = completed

	return t
}

// WithToday returns a copy of t with the today flag set to today.
func (t Task) WithToday(today bool) Task {
	t.Today = today

	return t
}

// Toggled flips the completion flag.
func (t Task) Toggled() Task {
	return t.WithCompleted(!t.Completed)
}

// ToggledToday flips the today flag.
func (t Task) ToggledToday() Task {
	return t.WithToday(!t.Today)
}
