package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"tasknote/internal/config"
)

var errNoEditorFound = errors.New("no editor found (set config.editor, $EDITOR, or install vi/nano)")

// resolveEditor checks for an available editor using the env map.
// Priority: config.Editor -> $EDITOR -> vi -> nano -> error.
func resolveEditor(cfg config.Config, env map[string]string) (string, error) {
	candidates := []string{cfg.Editor, env["EDITOR"], "vi", "nano"}

	for _, editor := range candidates {
		if editor == "" {
			continue
		}

		_, lookErr := exec.LookPath(editor)
		if lookErr == nil {
			return editor, nil
		}
	}

	return "", errNoEditorFound
}

func runEditor(ctx context.Context, editor, path string, stdin io.Reader, out, errOut io.Writer) error {
	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = out
	cmd.Stderr = errOut

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}

		return fmt.Errorf("failed to run editor: %w", err)
	}

	return nil
}
