package cli

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

var errOpenTarget = errors.New("open needs tasks or notes")

// OpenCmd returns the open command.
func OpenCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("open", flag.ContinueOnError),
		Usage: "open tasks|notes",
		Short: "Edit tasks.md or notes.md in your editor",
		Long: `Open tasks.md or notes.md in your editor (config.editor, $EDITOR, vi, nano).
Running sessions (watch, ui, capture) pick up the saved file automatically.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return errOpenTarget
			}

			var path string

			switch args[0] {
			case "tasks":
				s, openErr := a.openTasks()
				if openErr != nil {
					return openErr
				}

				path = s.Path()
				s.Close()
			case "notes":
				s, openErr := a.openNotes()
				if openErr != nil {
					return openErr
				}

				path = s.Path()
				s.Close()
			default:
				return fmt.Errorf("%w: %q", errOpenTarget, args[0])
			}

			editor, err := resolveEditor(a.cfg, a.env)
			if err != nil {
				return err
			}

			return runEditor(ctx, editor, path, a.stdin, o.Out(), a.errOut)
		},
	}
}
