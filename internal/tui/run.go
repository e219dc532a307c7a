package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tasknote/internal/record"
	"tasknote/internal/store"
)

// Options configures Run.
type Options struct {
	In       io.Reader
	Out      io.Writer
	NoScreen bool // render inline instead of the alternate screen
}

// Run shows the popover until the user quits or ctx is cancelled. Store
// changes, including external edits picked up by the watch, are pushed into
// the program as they happen.
func Run(ctx context.Context, tasks TaskStore, notes NoteStore, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}

	if opts.In != nil {
		progOpts = append(progOpts, tea.WithInput(opts.In))
	}

	if opts.Out != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Out))
	}

	if !opts.NoScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(New(tasks, notes), progOpts...)

	// Send blocks while Update runs, and Update may be the one mutating the
	// store that fires these.
	unsubTasks := tasks.Subscribe(func(s store.Snapshot[record.Task]) {
		go p.Send(tasksChangedMsg(s))
	})
	defer unsubTasks()

	unsubNotes := notes.Subscribe(func(s store.Snapshot[record.Note]) {
		go p.Send(notesChangedMsg(s))
	})
	defer unsubNotes()

	_, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("ui: %w", err)
	}

	return nil
}
