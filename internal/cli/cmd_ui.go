package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"tasknote/internal/tui"
)

// UICmd returns the ui command.
func UICmd(a *app) *Command {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	inline := fs.Bool("inline", false, "Render below the prompt instead of full screen")

	return &Command{
		Flags: fs,
		Usage: "ui [--inline]",
		Short: "Browse and edit tasks and notes interactively",
		Long: `Open the interactive view with Tasks, Today and Notes tabs.
Edits made elsewhere to tasks.md or notes.md show up while it is open.

Keys: a add, x done, t today, e edit, d delete, c completed,
/ filter, tab switch tab, r reload, q quit.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errTooManyArgs
			}

			tasks, notes, closeAll, err := a.openBoth()
			if err != nil {
				return err
			}
			defer closeAll()

			return tui.Run(ctx, tasks, notes, tui.Options{
				In:       a.stdin,
				Out:      o.Out(),
				NoScreen: *inline,
			})
		},
	}
}
