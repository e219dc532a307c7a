package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"tasknote/internal/record"
)

var errDoneAllExclusive = errors.New("--done and --all are mutually exclusive")

// TasksCmd returns the tasks command.
func TasksCmd(a *app) *Command {
	flags := flag.NewFlagSet("tasks", flag.ContinueOnError)
	today := flags.BoolP("today", "t", false, "Only tasks marked #today")
	done := flags.BoolP("done", "d", false, "Only completed tasks")
	all := flags.BoolP("all", "a", false, "Active and completed tasks")

	return &Command{
		Flags: flags,
		Usage: "tasks [flags]",
		Short: "List tasks (active only by default)",
		Long: `List tasks with their position. Positions are stable across filters:
they always index the full list, newest first, as stored in tasks.md.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errTooManyArgs
			}

			if *done && *all {
				return errDoneAllExclusive
			}

			s, err := a.openTasks()
			if err != nil {
				return err
			}
			defer s.Close()

			keep := func(t record.Task) bool {
				switch {
				case *today && !t.Today:
					return false
				case *all:
					return true
				case *done:
					return t.Completed
				default:
					return !t.Completed
				}
			}

			printTasks(o, s.Tasks(), keep, *today)

			return nil
		},
	}
}

func printTasks(o *IO, tasks []record.Task, keep func(record.Task) bool, todayView bool) {
	st := newStyles(o.Out())
	shown := 0

	for i, t := range tasks {
		if !keep(t) {
			continue
		}

		o.Println(st.task(i+1, t))

		shown++
	}

	if shown == 0 {
		if todayView {
			o.Println("no tasks for today")
		} else {
			o.Println("no tasks")
		}

		return
	}

	o.Println()
	o.Println(st.muted.Render(taskFooter(tasks, todayView)))
}

func taskFooter(tasks []record.Task, todayView bool) string {
	if todayView {
		return fmt.Sprintf("%d today", len(record.TodayTasks(tasks)))
	}

	return fmt.Sprintf("%d active", len(record.ActiveTasks(tasks)))
}

// AddCmd returns the add command.
func AddCmd(a *app) *Command {
	flags := flag.NewFlagSet("add", flag.ContinueOnError)
	today := flags.BoolP("today", "t", false, "Mark the task #today")

	return &Command{
		Flags: flags,
		Usage: "add <text> [flags]",
		Short: "Add a task",
		Long:  "Add a task at the top of tasks.md. All arguments are joined into the task text.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errTextRequired
			}

			s, err := a.openTasks()
			if err != nil {
				return err
			}
			defer s.Close()

			err = s.Add(text, *today)
			if err != nil {
				return err
			}

			o.Println(newStyles(o.Out()).task(1, s.Tasks()[0]))

			return nil
		},
	}
}

// DoneCmd returns the done command.
func DoneCmd(a *app) *Command {
	return taskToggleCmd(a, "done", "Toggle completion of the task at position n",
		func(s taskMutator, id string) error { return s.ToggleCompletion(id) })
}

// TodayCmd returns the today command.
func TodayCmd(a *app) *Command {
	return taskToggleCmd(a, "today", "Toggle the #today marker of the task at position n",
		func(s taskMutator, id string) error { return s.ToggleToday(id) })
}

type taskMutator interface {
	ToggleCompletion(id string) error
	ToggleToday(id string) error
}

func taskToggleCmd(a *app, name, short string, toggle func(taskMutator, string) error) *Command {
	return &Command{
		Flags: flag.NewFlagSet(name, flag.ContinueOnError),
		Usage: name + " <n>",
		Short: short,
		Exec: func(_ context.Context, o *IO, args []string) error {
			arg, err := positionArg(args)
			if err != nil {
				return err
			}

			s, err := a.openTasks()
			if err != nil {
				return err
			}
			defer s.Close()

			idx, err := parsePosition(arg, len(s.Tasks()))
			if err != nil {
				return err
			}

			err = toggle(s, s.Tasks()[idx].ID)
			if err != nil {
				return err
			}

			o.Println(newStyles(o.Out()).task(idx+1, s.Tasks()[idx]))

			return nil
		},
	}
}

// EditCmd returns the edit command.
func EditCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("edit", flag.ContinueOnError),
		Usage: "edit <n> <text>",
		Short: "Replace the text of the task at position n",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errPositionRequired
			}

			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return errTextRequired
			}

			s, err := a.openTasks()
			if err != nil {
				return err
			}
			defer s.Close()

			idx, err := parsePosition(args[0], len(s.Tasks()))
			if err != nil {
				return err
			}

			err = s.Update(s.Tasks()[idx].ID, text)
			if err != nil {
				return err
			}

			o.Println(newStyles(o.Out()).task(idx+1, s.Tasks()[idx]))

			return nil
		},
	}
}

// RmCmd returns the rm command.
func RmCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("rm", flag.ContinueOnError),
		Usage: "rm <n>",
		Short: "Delete the task at position n",
		Exec: func(_ context.Context, o *IO, args []string) error {
			arg, err := positionArg(args)
			if err != nil {
				return err
			}

			s, err := a.openTasks()
			if err != nil {
				return err
			}
			defer s.Close()

			tasks := s.Tasks()

			idx, err := parsePosition(arg, len(tasks))
			if err != nil {
				return err
			}

			err = s.Delete(tasks[idx].ID)
			if err != nil {
				return err
			}

			o.Println("removed:", tasks[idx].Text)

			return nil
		},
	}
}
