package record

import (
	"fmt"
	"time"
)

// ActiveTasks returns the tasks that are not completed, in collection order.
func ActiveTasks(tasks []Task) []Task {
	return filterTasks(tasks, func(t Task) bool { return !t.Completed })
}

// CompletedTasks returns the completed tasks, in collection order.
func CompletedTasks(tasks []Task) []Task {
	return filterTasks(tasks, func(t Task) bool { return t.Completed })
}

// TodayTasks returns the active tasks flagged for today.
func TodayTasks(tasks []Task) []Task {
	return filterTasks(tasks, func(t Task) bool { return t.Today && !t.Completed })
}

// TodayCompleted returns the completed tasks flagged for today.
func TodayCompleted(tasks []Task) []Task {
	return filterTasks(tasks, func(t Task) bool { return t.Today && t.Completed })
}

// FindTask returns the task with the given id.
func FindTask(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}

	return Task{}, false
}

// FindNote returns the note with the given id.
func FindNote(notes []Note, id string) (Note, bool) {
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}

	return Note{}, false
}

func filterTasks(tasks []Task, keep func(Task) bool) []Task {
	out := make([]Task, 0, len(tasks))

	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}

	return out
}

// RelativeTime formats t relative to now in an abbreviated style:
// "now", "5m ago", "3h ago", "2d ago", then the calendar date.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)

	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	default:
		return t.Format("2006-01-02")
	}
}
