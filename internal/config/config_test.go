package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tasknote/internal/config"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func Test_Load_Uses_Defaults_When_No_Config(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	work := t.TempDir()

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: work,
		Env:             map[string]string{"HOME": home},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got, want := cfg.DirectoryAbs, filepath.Join(home, "Documents", "TaskNote"); got != want {
		t.Fatalf("DirectoryAbs=%q, want=%q", got, want)
	}

	want := config.Sources{Directory: config.SourceDefault}
	if diff := cmp.Diff(want, cfg.Sources); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}

	if got, want := cfg.LogFileAbs, ""; got != want {
		t.Fatalf("LogFileAbs=%q, want=%q", got, want)
	}
}

func Test_Load_Applies_Precedence(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	work := t.TempDir()
	xdg := filepath.Join(home, "xdg")

	writeConfig(t, filepath.Join(xdg, "tasknote", "config.json"), `{
		// global settings
		"directory": "~/global-notes",
		"editor": "nano",
		"log_file": "~/tasknote.log",
	}`)
	writeConfig(t, filepath.Join(work, "custom.json"), `{"directory": "local"}`)

	tests := []struct {
		name       string
		input      config.LoadInput
		wantDir    string
		wantSource string
	}{
		{
			name:       "global",
			input:      config.LoadInput{Env: map[string]string{"HOME": home, "XDG_CONFIG_HOME": xdg}},
			wantDir:    filepath.Join(home, "global-notes"),
			wantSource: config.SourceGlobal,
		},
		{
			name:       "explicit file",
			input:      config.LoadInput{ConfigPath: "custom.json", Env: map[string]string{"HOME": home, "XDG_CONFIG_HOME": xdg}},
			wantDir:    filepath.Join(work, "local"),
			wantSource: config.SourceFile,
		},
		{
			name: "env",
			input: config.LoadInput{ConfigPath: "custom.json", Env: map[string]string{
				"HOME": home, "XDG_CONFIG_HOME": xdg, config.DirEnv: "/srv/notes",
			}},
			wantDir:    "/srv/notes",
			wantSource: config.SourceEnv,
		},
		{
			name: "flag",
			input: config.LoadInput{DirectoryOverride: "~/flag", Env: map[string]string{
				"HOME": home, "XDG_CONFIG_HOME": xdg, config.DirEnv: "/srv/notes",
			}},
			wantDir:    filepath.Join(home, "flag"),
			wantSource: config.SourceFlag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.input.WorkDirOverride = work

			cfg, err := config.Load(tt.input)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}

			if got := cfg.DirectoryAbs; got != tt.wantDir {
				t.Fatalf("DirectoryAbs=%q, want=%q", got, tt.wantDir)
			}

			if got := cfg.Sources.Directory; got != tt.wantSource {
				t.Fatalf("source=%q, want=%q", got, tt.wantSource)
			}

			if got, want := cfg.Editor, "nano"; got != want {
				t.Fatalf("Editor=%q, want=%q", got, want)
			}

			if got, want := cfg.LogFileAbs, filepath.Join(home, "tasknote.log"); got != want {
				t.Fatalf("LogFileAbs=%q, want=%q", got, want)
			}
		})
	}
}

func Test_Load_Returns_Error_When_Config_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "empty directory", content: `{"directory": ""}`, wantErr: config.ErrDirectoryEmpty},
		{name: "blank directory", content: `{"directory": "  "}`, wantErr: config.ErrDirectoryEmpty},
		{name: "bad jsonc", content: `{"directory": `, wantErr: config.ErrConfigInvalid},
		{name: "wrong type", content: `{"directory": 3}`, wantErr: config.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			work := t.TempDir()
			writeConfig(t, filepath.Join(work, "c.json"), tt.content)

			_, err := config.Load(config.LoadInput{
				WorkDirOverride: work,
				ConfigPath:      "c.json",
				Env:             map[string]string{},
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v, want=%v", err, tt.wantErr)
			}
		})
	}
}

func Test_Load_Returns_Error_When_Explicit_Config_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.Load(config.LoadInput{
		WorkDirOverride: t.TempDir(),
		ConfigPath:      "nope.json",
		Env:             map[string]string{},
	})
	if !errors.Is(err, config.ErrConfigFileNotFound) {
		t.Fatalf("err=%v, want=%v", err, config.ErrConfigFileNotFound)
	}
}

func Test_Save_Preserves_Comments_And_Roundtrips(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	path := filepath.Join(work, "cfg", "config.json")
	writeConfig(t, path, "{\n  // keep me\n  \"editor\": \"vim\",\n  \"directory\": \"/old\"\n}\n")

	err := config.Save(path, config.Config{Directory: "/new/place"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if !containsAll(string(data), "// keep me", `"/new/place"`, `"vim"`) {
		t.Fatalf("saved config lost content:\n%s", data)
	}

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: work, ConfigPath: path, Env: map[string]string{}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got, want := cfg.DirectoryAbs, "/new/place"; got != want {
		t.Fatalf("DirectoryAbs=%q, want=%q", got, want)
	}

	if got, want := cfg.Editor, "vim"; got != want {
		t.Fatalf("Editor=%q, want=%q", got, want)
	}
}

func Test_Save_Creates_Missing_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasknote", "config.json")

	if err := config.Save(path, config.Config{Directory: "~/Notes"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: t.TempDir(),
		ConfigPath:      path,
		Env:             map[string]string{"HOME": "/home/u"},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got, want := cfg.DirectoryAbs, "/home/u/Notes"; got != want {
		t.Fatalf("DirectoryAbs=%q, want=%q", got, want)
	}
}

func Test_Save_Rejects_Empty_Directory(t *testing.T) {
	t.Parallel()

	err := config.Save(filepath.Join(t.TempDir(), "c.json"), config.Config{})
	if !errors.Is(err, config.ErrDirectoryEmpty) {
		t.Fatalf("err=%v, want=%v", err, config.ErrDirectoryEmpty)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}

	return true
}
