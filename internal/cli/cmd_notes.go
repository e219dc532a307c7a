package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"tasknote/internal/markdown"
	"tasknote/internal/record"
)

const notePreviewLen = 60

// NotesCmd returns the notes command.
func NotesCmd(a *app) *Command {
	flags := flag.NewFlagSet("notes", flag.ContinueOnError)
	full := flags.BoolP("full", "f", false, "Print whole notes instead of previews")

	return &Command{
		Flags: flags,
		Usage: "notes [flags]",
		Short: "List notes, newest first",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errTooManyArgs
			}

			s, err := a.openNotes()
			if err != nil {
				return err
			}
			defer s.Close()

			notes := s.Notes()
			if len(notes) == 0 {
				o.Println("no notes")

				return nil
			}

			st := newStyles(o.Out())
			now := time.Now()

			for i, n := range notes {
				if *full {
					if i > 0 {
						o.Println()
					}

					o.Println(st.index.Render(fmt.Sprintf("%d.", i+1)), st.muted.Render(markdown.FormatNoteTime(n.CreatedAt)))
					o.Println(n.Content)

					continue
				}

				o.Println(st.note(i+1, n, record.RelativeTime(n.CreatedAt, now), notePreviewLen))
			}

			o.Println()
			o.Println(st.muted.Render(fmt.Sprintf("%d notes", len(notes))))

			return nil
		},
	}
}

// NoteCmd returns the note command.
func NoteCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("note", flag.ContinueOnError),
		Usage: "note <content>",
		Short: "Add a note (use - to read it from stdin)",
		Exec: func(_ context.Context, o *IO, args []string) error {
			content, err := noteContent(args, a.stdin)
			if err != nil {
				return err
			}

			s, err := a.openNotes()
			if err != nil {
				return err
			}
			defer s.Close()

			err = s.Add(content)
			if err != nil {
				return err
			}

			o.Println(newStyles(o.Out()).note(1, s.Notes()[0], "now", notePreviewLen))

			return nil
		},
	}
}

// NoteEditCmd returns the note-edit command.
func NoteEditCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("note-edit", flag.ContinueOnError),
		Usage: "note-edit <n> <content>",
		Short: "Replace the content of the note at position n",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errPositionRequired
			}

			content, err := noteContent(args[1:], a.stdin)
			if err != nil {
				return err
			}

			s, err := a.openNotes()
			if err != nil {
				return err
			}
			defer s.Close()

			idx, err := parsePosition(args[0], len(s.Notes()))
			if err != nil {
				return err
			}

			err = s.Update(s.Notes()[idx].ID, content)
			if err != nil {
				return err
			}

			n := s.Notes()[idx]
			o.Println(newStyles(o.Out()).note(idx+1, n, record.RelativeTime(n.CreatedAt, time.Now()), notePreviewLen))

			return nil
		},
	}
}

// NoteRmCmd returns the note-rm command.
func NoteRmCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("note-rm", flag.ContinueOnError),
		Usage: "note-rm <n>",
		Short: "Delete the note at position n",
		Exec: func(_ context.Context, o *IO, args []string) error {
			arg, err := positionArg(args)
			if err != nil {
				return err
			}

			s, err := a.openNotes()
			if err != nil {
				return err
			}
			defer s.Close()

			notes := s.Notes()

			idx, err := parsePosition(arg, len(notes))
			if err != nil {
				return err
			}

			err = s.Delete(notes[idx].ID)
			if err != nil {
				return err
			}

			o.Println("removed:", notes[idx].Preview(notePreviewLen))

			return nil
		},
	}
}

// noteContent joins args into note content; a single "-" reads stdin.
func noteContent(args []string, stdin io.Reader) (string, error) {
	content := strings.Join(args, " ")

	if len(args) == 1 && args[0] == "-" {
		if stdin == nil {
			return "", errTextRequired
		}

		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		content = string(data)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", errTextRequired
	}

	return content, nil
}
