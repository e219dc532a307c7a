package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"tasknote/internal/config"
	"tasknote/internal/record"
	"tasknote/internal/store"
)

const (
	capturePrompt   = "tasknote> "
	historyFileName = ".tasknote_history"
	todayPrefix     = "!"
	notePrefix      = ">"
)

var captureCommands = []string{":dir ", ":help", ":list", ":notes", ":quit"}

const captureHelp = `Type a line to add a task.
  !<text>       add a task marked #today
  ><text>       add a note
  :list         show active tasks
  :notes        show notes
  :dir <path>   move to another storage directory (saved to config)
  :quit         leave (ctrl-d works too)`

// prompter reads one line per call. Implemented by *liner.State.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// scanPrompter reads lines from a non-terminal reader.
type scanPrompter struct {
	scanner *bufio.Scanner
}

func (p *scanPrompter) Prompt(string) (string, error) {
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}

	if err := p.scanner.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

func (p *scanPrompter) AppendHistory(string) {}

func (p *scanPrompter) Close() error { return nil }

// CaptureCmd returns the capture command.
func CaptureCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("capture", flag.ContinueOnError),
		Usage: "capture",
		Short: "Quick-capture prompt for tasks and notes",
		Long:  "Read lines and turn each into a task or note.\n\n" + captureHelp,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errTooManyArgs
			}

			tasks, notes, closeAll, err := a.openBoth()
			if err != nil {
				return err
			}
			defer closeAll()

			session := &captureSession{a: a, o: o, tasks: tasks, notes: notes}

			return session.run(ctx)
		},
	}
}

type captureSession struct {
	a     *app
	o     *IO
	tasks *store.TaskStore
	notes *store.NoteStore
}

func (c *captureSession) run(ctx context.Context) error {
	p, historyPath := c.newPrompter()
	defer func() { _ = p.Close() }()

	for ctx.Err() == nil {
		line, err := p.Prompt(capturePrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				break
			}

			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		p.AppendHistory(line)

		if c.handle(line) {
			break
		}
	}

	if state, ok := p.(*liner.State); ok && historyPath != "" {
		saveHistory(state, historyPath)
	}

	return nil
}

// newPrompter uses liner on the process stdin and a plain line scanner
// for any other reader.
func (c *captureSession) newPrompter() (prompter, string) {
	if c.a.stdin != os.Stdin {
		stdin := c.a.stdin
		if stdin == nil {
			stdin = strings.NewReader("")
		}

		return &scanPrompter{scanner: bufio.NewScanner(stdin)}, ""
	}

	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(completeCapture)

	historyPath := ""
	if home := c.a.env["HOME"]; home != "" {
		historyPath = filepath.Join(home, historyFileName)
	}

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}

	return state, historyPath
}

func saveHistory(state *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		return
	}

	_, _ = state.WriteHistory(f)
	_ = f.Close()
}

func completeCapture(line string) []string {
	var out []string

	for _, c := range captureCommands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}

	return out
}

// handle runs one input line and reports whether the session should end.
// Store errors are printed and the session continues.
func (c *captureSession) handle(line string) bool {
	var err error

	switch {
	case line == ":quit" || line == ":q" || line == "exit":
		return true
	case line == ":help":
		c.o.Println(captureHelp)
	case line == ":list":
		printTasks(c.o, c.tasks.Tasks(), func(t record.Task) bool { return !t.Completed }, false)
	case line == ":notes":
		c.printNotes()
	case strings.HasPrefix(line, ":dir"):
		err = c.changeDir(strings.TrimSpace(strings.TrimPrefix(line, ":dir")))
	case strings.HasPrefix(line, ":"):
		c.o.Println("unknown command", line, "(try :help)")
	case strings.HasPrefix(line, todayPrefix):
		err = c.addTask(strings.TrimPrefix(line, todayPrefix), true)
	case strings.HasPrefix(line, notePrefix):
		err = c.addNote(strings.TrimPrefix(line, notePrefix))
	default:
		err = c.addTask(line, false)
	}

	if err != nil {
		c.o.ErrPrintln("error:", err)
	}

	return false
}

func (c *captureSession) addTask(text string, today bool) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errTextRequired
	}

	err := c.tasks.Add(text, today)
	if err != nil {
		return err
	}

	if today {
		c.o.Println("task added for today:", text)
	} else {
		c.o.Println("task added:", text)
	}

	return nil
}

func (c *captureSession) addNote(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return errTextRequired
	}

	err := c.notes.Add(content)
	if err != nil {
		return err
	}

	c.o.Println("note added:", record.Note{Content: content}.Preview(notePreviewLen))

	return nil
}

func (c *captureSession) printNotes() {
	notes := c.notes.Notes()
	if len(notes) == 0 {
		c.o.Println("no notes")

		return
	}

	for i, n := range notes {
		c.o.Printf("%d. %s\n", i+1, n.Preview(notePreviewLen))
	}
}

// changeDir moves both stores to dir and saves it as the storage directory.
func (c *captureSession) changeDir(arg string) error {
	if arg == "" {
		c.o.Println(c.tasks.Dir())

		return nil
	}

	dir := config.ResolvePath(c.a.cfg.EffectiveCwd, c.a.env, arg)

	path := c.a.settingsPath()
	if path == "" {
		return errNoConfigLocation
	}

	err := config.Save(path, config.Config{Directory: dir})
	if err != nil {
		return err
	}

	c.a.cfg.DirectoryAbs = dir

	// Watch failures leave the stores usable.
	taskErr := c.tasks.SetDirectory(dir)
	noteErr := c.notes.SetDirectory(dir)

	if err := errors.Join(taskErr, noteErr); err != nil {
		c.o.ErrPrintln("warning:", err)
	}

	c.o.Println("directory:", dir)

	return nil
}
