package cli_test

import (
	"testing"

	"tasknote/internal/cli"
)

func Test_Tasks_Empty_When_No_File(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	if got, want := c.MustRun("tasks"), "no tasks"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	if got, want := c.ReadFile("tasks.md"), ""; got != want {
		t.Errorf("tasks.md=%q, want=%q", got, want)
	}
}

func Test_Add_Writes_Newest_First(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	if got, want := c.MustRun("add", "buy", "milk"), "1. [ ] buy milk"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	if got, want := c.MustRun("add", "-t", "call bob"), "1. [ ] call bob #today"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	if got, want := c.ReadFile("tasks.md"), "- [ ] call bob #today\n- [ ] buy milk\n"; got != want {
		t.Errorf("tasks.md=%q, want=%q", got, want)
	}

	stdout := c.MustRun("tasks")
	cli.AssertContains(t, stdout, "1. [ ] call bob #today\n2. [ ] buy milk")
	cli.AssertContains(t, stdout, "2 active")
}

func Test_Add_Requires_Text(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("add", "  ")

	cli.AssertContains(t, stderr, "text is required")
}

func Test_Done_Toggles_And_Filters(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("tasks.md", "- [ ] one\n- [ ] two #today\n- [x] three\n")

	if got, want := c.MustRun("done", "1"), "1. [x] one"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	if got, want := c.ReadFile("tasks.md"), "- [x] one\n- [ ] two #today\n- [x] three\n"; got != want {
		t.Errorf("tasks.md=%q, want=%q", got, want)
	}

	active := c.MustRun("tasks")
	cli.AssertContains(t, active, "2. [ ] two #today")
	cli.AssertNotContains(t, active, "one")
	cli.AssertContains(t, active, "1 active")

	done := c.MustRun("tasks", "--done")
	cli.AssertContains(t, done, "1. [x] one")
	cli.AssertContains(t, done, "3. [x] three")
	cli.AssertNotContains(t, done, "two")

	all := c.MustRun("tasks", "-a")
	cli.AssertContains(t, all, "one")
	cli.AssertContains(t, all, "two")
	cli.AssertContains(t, all, "three")

	c.MustRun("done", "1")

	if got, want := c.ReadFile("tasks.md"), "- [ ] one\n- [ ] two #today\n- [x] three\n"; got != want {
		t.Errorf("tasks.md=%q, want=%q", got, want)
	}
}

func Test_Today_Toggles_Marker(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("tasks.md", "- [ ] one\n- [ ] two #today\n")

	c.MustRun("today", "1")
	c.MustRun("today", "2")

	if got, want := c.ReadFile("tasks.md"), "- [ ] one #today\n- [ ] two\n"; got != want {
		t.Errorf("tasks.md=%q, want=%q", got, want)
	}

	stdout := c.MustRun("tasks", "--today")
	cli.AssertContains(t, stdout, "1. [ ] one #today")
	cli.AssertNotContains(t, stdout, "two")
	cli.AssertContains(t, stdout, "1 today")
}

func Test_Tasks_Today_Empty(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("tasks.md", "- [ ] one\n")

	if got, want := c.MustRun("tasks", "--today"), "no tasks for today"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}
}

func Test_Tasks_Rejects_Done_With_All(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("tasks", "--done", "--all")

	cli.AssertContains(t, stderr, "mutually exclusive")
}

func Test_Edit_Replaces_Text_And_Keeps_Flags(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("tasks.md", "- [x] old text #today\n")

	if got, want := c.MustRun("edit", "1", "new", "text"), "1. [x] new text #today"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	if got, want := c.ReadFile("tasks.md"), "- [x] new text #today\n"; got != want {
		t.Errorf("tasks.md=%q, want=%q", got, want)
	}
}

func Test_Rm_Deletes_Task(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("tasks.md", "- [ ] keep\n- [ ] drop\n")

	if got, want := c.MustRun("rm", "2"), "removed: drop"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	if got, want := c.ReadFile("tasks.md"), "- [ ] keep\n"; got != want {
		t.Errorf("tasks.md=%q, want=%q", got, want)
	}
}

func Test_Position_Errors(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		args []string
		want string
	}{
		{name: "missing", args: []string{"done"}, want: "position is required"},
		{name: "not a number", args: []string{"done", "abc"}, want: "position must be a positive number"},
		{name: "zero", args: []string{"rm", "0"}, want: "position must be a positive number"},
		{name: "out of range", args: []string{"today", "5"}, want: "no item at position 5 (have 1)"},
		{name: "too many", args: []string{"rm", "1", "2"}, want: "too many arguments"},
		{name: "edit without text", args: []string{"edit", "1"}, want: "text is required"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			c.WriteFile("tasks.md", "- [ ] only\n")

			stderr := c.MustFail(tt.args...)
			cli.AssertContains(t, stderr, tt.want)

			if got, want := c.ReadFile("tasks.md"), "- [ ] only\n"; got != want {
				t.Errorf("tasks.md=%q, want=%q", got, want)
			}
		})
	}
}

func Test_Dir_Flag_Overrides_Storage_Directory(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("--dir", "elsewhere", "add", "x")

	stdout := c.MustRun("--dir", "elsewhere", "tasks")
	cli.AssertContains(t, stdout, "1. [ ] x")

	if got, want := c.MustRun("tasks"), "no tasks"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}
}

func Test_Dir_Env_Overrides_Storage_Directory(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Env["TASKNOTE_DIR"] = c.Dir + "/from-env"

	c.MustRun("add", "x")

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, "directory="+c.Dir+"/from-env")
	cli.AssertContains(t, stdout, "directory_source=env")
}
