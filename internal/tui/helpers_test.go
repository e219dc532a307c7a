package tui_test

import "os"

func writeTasks(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
