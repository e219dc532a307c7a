package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tasknote/internal/record"
	"tasknote/internal/store"
)

// TasksChanged wraps snap in the message subscriptions deliver.
func TasksChanged(snap store.Snapshot[record.Task]) tea.Msg {
	return tasksChangedMsg(snap)
}
