package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	flag "github.com/spf13/pflag"
)

const defaultFindLimit = 20

type findItem struct {
	kind  string
	pos   int
	label string
}

// FindCmd returns the find command.
func FindCmd(a *app) *Command {
	flags := flag.NewFlagSet("find", flag.ContinueOnError)
	limit := flags.IntP("limit", "n", defaultFindLimit, "Maximum results to show")
	tasksOnly := flags.Bool("tasks", false, "Search tasks only")
	notesOnly := flags.Bool("notes", false, "Search notes only")

	return &Command{
		Flags: flags,
		Usage: "find <query> [flags]",
		Short: "Fuzzy search tasks and notes",
		Long:  "Fuzzy search task text and note content. Best matches first; positions can be passed to done, rm, note-edit and friends.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errTextRequired
			}

			tasks, notes, closeAll, err := a.openBoth()
			if err != nil {
				return err
			}
			defer closeAll()

			var (
				items []findItem
				names []string
			)

			if !*notesOnly {
				for i, t := range tasks.Tasks() {
					items = append(items, findItem{kind: "task", pos: i + 1, label: t.Text})
					names = append(names, t.Text)
				}
			}

			if !*tasksOnly {
				for i, n := range notes.Notes() {
					items = append(items, findItem{kind: "note", pos: i + 1, label: n.Preview(notePreviewLen)})
					names = append(names, n.Content)
				}
			}

			matches := fuzzy.Find(query, names)
			if len(matches) == 0 {
				o.Println("no matches")

				return nil
			}

			st := newStyles(o.Out())

			for i, m := range matches {
				if *limit > 0 && i >= *limit {
					break
				}

				item := items[m.Index]
				o.Println(st.muted.Render(fmt.Sprintf("%s %d:", item.kind, item.pos)), item.label)
			}

			return nil
		},
	}
}
