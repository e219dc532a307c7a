package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasknote/internal/record"
)

const notePreviewLimit = 80

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	if m.mode != inputNone {
		b.WriteString(inputBoxStyle.Render(m.input.View()))
		b.WriteString("\n")
	} else if m.filter != "" {
		b.WriteString(mutedStyle.Render("filter: " + m.filter))
		b.WriteString("\n")
	}

	b.WriteString(m.viewRows())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render(m.footer()))

	return b.String()
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, tabCount)

	for t := Tab(0); t < tabCount; t++ {
		label := t.String()
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewRows() string {
	rows := m.rows()
	if len(rows) == 0 {
		return mutedStyle.Render(m.emptyText())
	}

	lines := make([]string, 0, len(rows))

	for i, r := range rows {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}

		lines = append(lines, prefix+m.viewRow(r))
	}

	return strings.Join(lines, "\n")
}

func (m Model) viewRow(r row) string {
	switch r.kind {
	case rowCompletedHeader:
		arrow := "▸"
		if m.showCompleted {
			arrow = "▾"
		}

		return sectionStyle.Render(fmt.Sprintf("%s Completed (%d)", arrow, r.pos))

	case rowNote:
		age := mutedStyle.Render(record.RelativeTime(r.note.CreatedAt, m.now()))

		return r.note.Preview(notePreviewLimit) + "  " + age

	default:
		t := r.task
		if t.Completed {
			return checkStyle.Render("[x]") + " " + doneStyle.Render(t.Text)
		}

		line := "[ ] " + t.Text
		if t.Today && m.tab == TabTasks {
			line += " " + todayStyle.Render("★")
		}

		return line
	}
}

func (m Model) emptyText() string {
	if m.filter != "" {
		return "no matches"
	}

	switch m.tab {
	case TabToday:
		return "nothing planned for today"
	case TabNotes:
		return "no notes"
	default:
		return "no tasks"
	}
}

func (m Model) footer() string {
	var count string

	switch m.tab {
	case TabToday:
		count = fmt.Sprintf("%d today", len(record.TodayTasks(record.ActiveTasks(m.taskItems))))
	case TabNotes:
		count = fmt.Sprintf("%d notes", len(m.noteItems))
	default:
		count = fmt.Sprintf("%d active", len(record.ActiveTasks(m.taskItems)))
	}

	help := make([]string, 0, len(keys.help()))
	for _, b := range keys.help() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}

	return count + "  " + mutedStyle.Render(strings.Join(help, " · "))
}
