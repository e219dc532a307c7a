package cli

import (
	"context"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"tasknote/internal/record"
	"tasknote/internal/store"
)

// WatchCmd returns the watch command.
func WatchCmd(a *app) *Command {
	flags := flag.NewFlagSet("watch", flag.ContinueOnError)
	duration := flags.Duration("for", 0, "Stop after this long (0 = until interrupted)")

	return &Command{
		Flags: flags,
		Usage: "watch [flags]",
		Short: "Print a line whenever tasks.md or notes.md changes on disk",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errTooManyArgs
			}

			tasks, notes, closeAll, err := a.openBoth()
			if err != nil {
				return err
			}
			defer closeAll()

			if !tasks.Watching() {
				o.Warn(tasks.Path()+" is not watched", "changes to it will not be reported")
			}

			if !notes.Watching() {
				o.Warn(notes.Path()+" is not watched", "changes to it will not be reported")
			}

			lines := make(chan string, 64)
			send := func(line string) {
				select {
				case lines <- line:
				default:
				}
			}

			unsubTasks := tasks.Subscribe(func(snap store.Snapshot[record.Task]) {
				send(fmt.Sprintf("tasks.md changed: %d tasks, %d active, %d today",
					len(snap.Items), len(record.ActiveTasks(snap.Items)), len(record.TodayTasks(snap.Items))))
			})
			defer unsubTasks()

			unsubNotes := notes.Subscribe(func(snap store.Snapshot[record.Note]) {
				send(fmt.Sprintf("notes.md changed: %d notes", len(snap.Items)))
			})
			defer unsubNotes()

			o.Println("watching", a.cfg.DirectoryAbs)

			var timeout <-chan time.Time

			if *duration > 0 {
				timer := time.NewTimer(*duration)
				defer timer.Stop()

				timeout = timer.C
			}

			for {
				select {
				case line := <-lines:
					o.Println(line)
				case <-timeout:
					return nil
				case <-ctx.Done():
					return nil
				}
			}
		},
	}
}
