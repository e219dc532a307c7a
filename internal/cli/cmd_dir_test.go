package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"tasknote/internal/cli"
)

func Test_Dir_Prints_Default(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	if got, want := c.MustRun("dir"), c.DataDir(); got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}
}

func Test_Dir_Saves_And_Creates_Files(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	target := filepath.Join(c.Dir, "synced")
	globalPath := filepath.Join(c.Home, ".config", "tasknote", "config.json")

	stdout := c.MustRun("dir", "synced")
	cli.AssertContains(t, stdout, target)
	cli.AssertContains(t, stdout, "saved to "+globalPath)

	for _, name := range []string{"tasks.md", "notes.md"} {
		_, err := os.Stat(filepath.Join(target, name))
		if err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}

	if got, want := c.MustRun("dir"), target; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	c.MustRun("add", "lands in synced")

	data, err := os.ReadFile(filepath.Join(target, "tasks.md"))
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "- [ ] lands in synced\n"; got != want {
		t.Errorf("tasks.md=%q, want=%q", got, want)
	}
}

func Test_Dir_Keeps_Config_Comments(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	configPath := filepath.Join(c.Dir, "tasknote.json")

	err := os.WriteFile(configPath, []byte("{\n  // my editor\n  \"editor\": \"nano\",\n}\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	stdout := c.MustRun("-c", "tasknote.json", "dir", "elsewhere")
	cli.AssertContains(t, stdout, "saved to "+configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}

	cli.AssertContains(t, string(data), "// my editor")
	cli.AssertContains(t, string(data), `"directory"`)

	config := c.MustRun("-c", "tasknote.json", "print-config")
	cli.AssertContains(t, config, "editor=nano")
	cli.AssertContains(t, config, "directory="+filepath.Join(c.Dir, "elsewhere"))
	cli.AssertContains(t, config, "directory_source=config")
}

func Test_Dir_Warns_When_Flag_Overrides(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout, stderr, exitCode := c.Run("--dir", "flagged", "dir", "saved")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stdout, filepath.Join(c.Dir, "saved"))
	cli.AssertContains(t, stderr, "--dir overrides the saved directory")
}

func Test_Print_Config_Defaults(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("print-config")

	cli.AssertContains(t, stdout, "effective_cwd="+c.Dir)
	cli.AssertContains(t, stdout, "directory="+c.DataDir())
	cli.AssertContains(t, stdout, "directory_source=default")
	cli.AssertNotContains(t, stdout, "global_config=")
}
