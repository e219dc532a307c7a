package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"tasknote/internal/record"
)

// styles renders list output. Colors are dropped automatically when the
// writer is not a terminal.
type styles struct {
	index lipgloss.Style
	done  lipgloss.Style
	today lipgloss.Style
	muted lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		index: r.NewStyle().Foreground(lipgloss.Color("4")),
		done:  r.NewStyle().Faint(true).Strikethrough(true),
		today: r.NewStyle().Foreground(lipgloss.Color("3")),
		muted: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (s styles) task(pos int, t record.Task) string {
	box := "[ ]"
	text := t.Text

	if t.Completed {
		box = "[x]"
		text = s.done.Render(text)
	}

	line := fmt.Sprintf("%s %s %s", s.index.Render(fmt.Sprintf("%d.", pos)), box, text)

	if t.Today {
		line += " " + s.today.Render("#today")
	}

	return line
}

func (s styles) note(pos int, n record.Note, age string, previewLen int) string {
	return fmt.Sprintf("%s %s  %s", s.index.Render(fmt.Sprintf("%d.", pos)), s.muted.Render(age), n.Preview(previewLen))
}
