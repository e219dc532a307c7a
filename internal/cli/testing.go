package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CLI provides a clean interface for running CLI commands in tests.
// It manages a temp working directory and a temp $HOME, so the default
// storage directory and the global config both live under the test's
// temp dir.
type CLI struct {
	t    *testing.T
	Dir  string
	Home string
	Env  map[string]string
}

// NewCLI creates a new test CLI with a temp directory.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()
	home := filepath.Join(dir, "home")

	err := os.MkdirAll(home, 0o755)
	if err != nil {
		t.Fatalf("failed to create home: %v", err)
	}

	return &CLI{
		t:    t,
		Dir:  dir,
		Home: home,
		Env:  map[string]string{"HOME": home},
	}
}

// Run executes the CLI with the given args and returns stdout, stderr, and exit code.
// Args should not include "tasknote" or "--cwd" - those are added automatically.
func (r *CLI) Run(args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"tasknote", "--cwd", r.Dir}, args...)
	code := Run(nil, &outBuf, &errBuf, fullArgs, r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// RunWithInput executes the CLI with stdin and returns stdout, stderr, and exit code.
// stdin must be a string or io.Reader; panics otherwise.
func (r *CLI) RunWithInput(stdin any, args ...string) (string, string, int) {
	var inReader io.Reader
	switch v := stdin.(type) {
	case string:
		inReader = strings.NewReader(v)
	case io.Reader:
		inReader = v
	default:
		panic(fmt.Sprintf("stdin must be string or io.Reader, got %T", stdin))
	}

	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"tasknote", "--cwd", r.Dir}, args...)
	code := Run(inReader, &outBuf, &errBuf, fullArgs, r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if the command returns non-zero.
// Returns trimmed stdout on success.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail executes the CLI and fails the test if the command succeeds.
// Also fails if stdout is not empty. Returns trimmed stderr.
func (r *CLI) MustFail(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code == 0 {
		r.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	if stdout != "" {
		r.t.Fatalf("command %v failed but stdout should be empty\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// DataDir returns the default storage directory under the test $HOME.
func (r *CLI) DataDir() string {
	return filepath.Join(r.Home, "Documents", "TaskNote")
}

// ReadFile reads a file from the storage directory.
func (r *CLI) ReadFile(name string) string {
	r.t.Helper()

	content, err := os.ReadFile(filepath.Join(r.DataDir(), name))
	if err != nil {
		r.t.Fatalf("failed to read %s: %v", name, err)
	}

	return string(content)
}

// WriteFile writes a file into the storage directory.
func (r *CLI) WriteFile(name, content string) {
	r.t.Helper()

	err := os.MkdirAll(r.DataDir(), 0o755)
	if err != nil {
		r.t.Fatalf("failed to create %s: %v", r.DataDir(), err)
	}

	err = os.WriteFile(filepath.Join(r.DataDir(), name), []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write %s: %v", name, err)
	}
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
