package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"tasknote/internal/markdown"
)

var errUnknownFormat = errors.New("unknown format (want yaml or json)")

type exportTask struct {
	Text      string `json:"text"      yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	Today     bool   `json:"today"     yaml:"today"`
}

type exportNote struct {
	CreatedAt string `json:"created_at" yaml:"created_at"`
	Content   string `json:"content"    yaml:"content"`
}

type exportDoc struct {
	Directory string       `json:"directory" yaml:"directory"`
	Tasks     []exportTask `json:"tasks"     yaml:"tasks"`
	Notes     []exportNote `json:"notes"     yaml:"notes"`
}

// ExportCmd returns the export command.
func ExportCmd(a *app) *Command {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	format := flags.StringP("format", "f", "yaml", "Output format: yaml|json")

	return &Command{
		Flags: flags,
		Usage: "export [flags]",
		Short: "Print both collections as YAML or JSON",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errTooManyArgs
			}

			if *format != "yaml" && *format != "json" {
				return fmt.Errorf("%w: %s", errUnknownFormat, *format)
			}

			tasks, notes, closeAll, err := a.openBoth()
			if err != nil {
				return err
			}
			defer closeAll()

			doc := exportDoc{
				Directory: a.cfg.DirectoryAbs,
				Tasks:     []exportTask{},
				Notes:     []exportNote{},
			}

			for _, t := range tasks.Tasks() {
				doc.Tasks = append(doc.Tasks, exportTask{Text: t.Text, Completed: t.Completed, Today: t.Today})
			}

			for _, n := range notes.Notes() {
				doc.Notes = append(doc.Notes, exportNote{CreatedAt: markdown.FormatNoteTime(n.CreatedAt), Content: n.Content})
			}

			var data []byte

			if *format == "json" {
				data, err = json.MarshalIndent(doc, "", "  ")
				data = append(data, '\n')
			} else {
				data, err = yaml.Marshal(doc)
			}

			if err != nil {
				return fmt.Errorf("encode %s: %w", *format, err)
			}

			o.Printf("%s", data)

			return nil
		},
	}
}
