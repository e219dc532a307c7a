// Package cli implements the tasknote command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"tasknote/internal/config"
	"tasknote/internal/logs"
)

const helpFlag = "--help"

// Run is the main entry point. Returns exit code.
//
// sigCh may be nil. A signal on it cancels the context handed to the
// command, which ends long-running commands such as watch and ui.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globalFlags := flag.NewFlagSet("tasknote", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.SetOutput(&strings.Builder{})

	flagHelp := globalFlags.BoolP("help", "h", false, "Show help")
	flagCwd := globalFlags.StringP("cwd", "C", "", "Run as if started in `dir`")
	flagConfig := globalFlags.StringP("config", "c", "", "Use specified config `file`")
	flagDir := globalFlags.String("dir", "", "Store tasks.md and notes.md in `directory`")
	flagVerbose := globalFlags.BoolP("verbose", "v", false, "Log store activity to stderr")

	a := &app{env: env, stdin: stdin, errOut: errOut}
	commands := allCommands(a)

	var globalArgs []string
	if len(args) > 1 {
		globalArgs = args[1:]
	}

	err := globalFlags.Parse(globalArgs)
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, globalFlags, commands)

		return 1
	}

	rest := globalFlags.Args()

	if *flagHelp || len(rest) == 0 {
		printUsage(out, globalFlags, commands)

		return 0
	}

	cmd := findCommand(commands, rest[0])
	if cmd == nil {
		fprintln(errOut, "error: unknown command:", rest[0])
		printUsage(errOut, globalFlags, commands)

		return 1
	}

	o := NewIO(out, errOut)

	if hasHelpFlag(rest[1:]) {
		cmd.PrintHelp(o)

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride:   *flagCwd,
		ConfigPath:        *flagConfig,
		DirectoryOverride: *flagDir,
		Env:               env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	logger, closer, err := logs.New(logs.Options{File: cfg.LogFileAbs, Verbose: *flagVerbose, Stderr: errOut})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	defer func() { _ = closer.Close() }()

	a.cfg = cfg
	a.logger = logger
	a.configPath = *flagConfig

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	code := cmd.Run(ctx, o, rest[1:])
	finish := o.Finish()

	if code != 0 {
		return code
	}

	return finish
}

func allCommands(a *app) []*Command {
	return []*Command{
		TasksCmd(a),
		AddCmd(a),
		DoneCmd(a),
		TodayCmd(a),
		EditCmd(a),
		RmCmd(a),
		NotesCmd(a),
		NoteCmd(a),
		NoteEditCmd(a),
		NoteRmCmd(a),
		FindCmd(a),
		ExportCmd(a),
		OpenCmd(a),
		WatchCmd(a),
		CaptureCmd(a),
		UICmd(a),
		DirCmd(a),
		PrintConfigCmd(a),
	}
}

func findCommand(commands []*Command, name string) *Command {
	for _, c := range commands {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

func printUsage(w io.Writer, globalFlags *flag.FlagSet, commands []*Command) {
	fprintln(w, `tasknote - tasks and notes kept in plain markdown files

Usage: tasknote [options] <command> [args]

Options:`)

	var buf strings.Builder

	globalFlags.SetOutput(&buf)
	globalFlags.PrintDefaults()
	globalFlags.SetOutput(&strings.Builder{})

	_, _ = io.WriteString(w, buf.String())

	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range commands {
		fprintln(w, c.HelpLine())
	}
}
