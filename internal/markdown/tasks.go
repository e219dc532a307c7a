package markdown

import (
	"strings"

	"tasknote/internal/record"
)

const (
	completedPrefix      = "- [x] "
	completedPrefixUpper = "- [X] "
	openPrefix           = "- [ ] "
	todayMarker          = "#today"
	todaySuffix          = " " + todayMarker
)

// EncodeTasks renders tasks one per line in collection order.
func EncodeTasks(tasks []record.Task) string {
	lines := make([]string, 0, len(tasks))

	for _, t := range tasks {
		lines = append(lines, encodeTask(t))
	}

	return joinWithTrailingNewline(lines, "\n")
}

func encodeTask(t record.Task) string {
	var b strings.Builder

	if t.Completed {
		b.WriteString(completedPrefix)
	} else {
		b.WriteString(openPrefix)
	}

	b.WriteString(t.Text)

	if t.Today {
		b.WriteString(todaySuffix)
	}

	return b.String()
}

// DecodeTasks parses every checkbox line of content into a task.
//
// The format carries neither identity nor timestamps, so each decoded task
// gets a fresh ID and the current time.
func DecodeTasks(content string) []record.Task {
	lines := splitLines(content)
	tasks := make([]record.Task, 0, len(lines))

	for _, line := range lines {
		if t, ok := decodeTaskLine(line); ok {
			tasks = append(tasks, t)
		}
	}

	return tasks
}

func decodeTaskLine(line string) (record.Task, bool) {
	trimmed := strings.TrimSpace(line)

	var (
		payload   string
		completed bool
	)

	switch {
	case strings.HasPrefix(trimmed, completedPrefix), strings.HasPrefix(trimmed, completedPrefixUpper):
		payload = trimmed[len(completedPrefix):]
		completed = true
	case strings.HasPrefix(trimmed, openPrefix):
		payload = trimmed[len(openPrefix):]
	default:
		return record.Task{}, false
	}

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return record.Task{}, false
	}

	text, today := strings.CutSuffix(payload, todaySuffix)
	if payload == todayMarker {
		text, today = "", true
	}

	text = strings.TrimSpace(text)

	if text == "" {
		return record.Task{}, false
	}

	return record.NewTask(text, completed, today), true
}
