// Package tui is the interactive popover: tabs for all tasks, today's tasks
// and notes over live stores.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"tasknote/internal/record"
	"tasknote/internal/store"
)

// TaskStore is the task store surface the popover uses.
type TaskStore interface {
	Snapshot() store.Snapshot[record.Task]
	Load()
	Add(text string, today bool) error
	Update(id, text string) error
	ToggleCompletion(id string) error
	ToggleToday(id string) error
	Delete(id string) error
	Subscribe(fn func(store.Snapshot[record.Task])) func()
}

// NoteStore is the note store surface the popover uses.
type NoteStore interface {
	Snapshot() store.Snapshot[record.Note]
	Load()
	Add(content string) error
	Update(id, content string) error
	Delete(id string) error
	Subscribe(fn func(store.Snapshot[record.Note])) func()
}

// Tab identifies a popover tab.
type Tab int

const (
	TabTasks Tab = iota
	TabToday
	TabNotes
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabTasks:
		return "Tasks"
	case TabToday:
		return "Today"
	case TabNotes:
		return "Notes"
	default:
		return "?"
	}
}

func (t Tab) placeholder() string {
	switch t {
	case TabToday:
		return "Add a task for today..."
	case TabNotes:
		return "Add a note..."
	default:
		return "Add a task..."
	}
}

type tasksChangedMsg store.Snapshot[record.Task]

type notesChangedMsg store.Snapshot[record.Note]

type rowKind int

const (
	rowTask rowKind = iota
	rowNote
	rowCompletedHeader
)

type row struct {
	kind rowKind
	pos  int // index into the full collection
	task record.Task
	note record.Note
}

type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputEdit
	inputFilter
)

// Model is the root bubbletea model.
type Model struct {
	tasks TaskStore
	notes NoteStore

	taskItems   []record.Task
	noteItems   []record.Note
	taskVersion uint64
	noteVersion uint64

	tab           Tab
	cursor        int
	showCompleted bool
	filter        string

	mode    inputMode
	editID  string
	input   textinput.Model
	status  string
	isError bool

	width  int
	height int
	now    func() time.Time
}

// New returns a popover model over tasks and notes.
func New(tasks TaskStore, notes NoteStore) Model {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Prompt = "+ "

	m := Model{
		tasks: tasks,
		notes: notes,
		input: ti,
		now:   time.Now,
	}

	ts := tasks.Snapshot()
	m.taskItems, m.taskVersion = ts.Items, ts.Version

	ns := notes.Snapshot()
	m.noteItems, m.noteVersion = ns.Items, ns.Version

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)

		return m, nil

	case tasksChangedMsg:
		m.applyTasks(store.Snapshot[record.Task](msg))

		return m, nil

	case notesChangedMsg:
		m.applyNotes(store.Snapshot[record.Note](msg))

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.mode != inputNone {
			return m.updateInput(msg)
		}

		return m.updateList(msg)
	}

	return m, nil
}

// applyTasks takes snap unless an equal or newer version was already seen.
func (m *Model) applyTasks(snap store.Snapshot[record.Task]) {
	if snap.Version <= m.taskVersion {
		return
	}

	m.taskVersion = snap.Version
	m.taskItems = snap.Items
	m.clampCursor()
}

func (m *Model) applyNotes(snap store.Snapshot[record.Note]) {
	if snap.Version <= m.noteVersion {
		return
	}

	m.noteVersion = snap.Version
	m.noteItems = snap.Items
	m.clampCursor()
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.NextTab):
		m.switchTab((m.tab + 1) % tabCount)
	case key.Matches(msg, keys.PrevTab):
		m.switchTab((m.tab + tabCount - 1) % tabCount)
	case msg.String() == "1", msg.String() == "2", msg.String() == "3":
		m.switchTab(Tab(msg.String()[0] - '1'))
	case key.Matches(msg, keys.Add):
		return m.startInput(inputAdd, "", "")
	case key.Matches(msg, keys.Filter):
		return m.startInput(inputFilter, m.filter, "")
	case key.Matches(msg, keys.ClearOrEsc):
		m.filter = ""
		m.clampCursor()
	case key.Matches(msg, keys.Completed):
		m.showCompleted = !m.showCompleted
		m.clampCursor()
	case key.Matches(msg, keys.Reload):
		m.tasks.Load()
		m.notes.Load()
		m.refresh()
	case key.Matches(msg, keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, keys.Today):
		if r, ok := m.selected(); ok && r.kind == rowTask {
			m.report(m.tasks.ToggleToday(r.task.ID))
		}
	case key.Matches(msg, keys.Edit):
		if r, ok := m.selected(); ok {
			switch r.kind {
			case rowTask:
				return m.startInput(inputEdit, r.task.Text, r.task.ID)
			case rowNote:
				return m.startInput(inputEdit, r.note.Content, r.note.ID)
			}
		}
	case key.Matches(msg, keys.Delete):
		m.deleteSelected()
	}

	return m, nil
}

func (m *Model) switchTab(t Tab) {
	m.tab = t
	m.cursor = 0
}

func (m *Model) toggleSelected() {
	r, ok := m.selected()
	if !ok {
		return
	}

	switch r.kind {
	case rowCompletedHeader:
		m.showCompleted = !m.showCompleted
		m.clampCursor()
	case rowTask:
		m.report(m.tasks.ToggleCompletion(r.task.ID))
	}
}

func (m *Model) deleteSelected() {
	r, ok := m.selected()
	if !ok {
		return
	}

	switch r.kind {
	case rowTask:
		m.report(m.tasks.Delete(r.task.ID))
	case rowNote:
		m.report(m.notes.Delete(r.note.ID))
	}
}

func (m Model) startInput(mode inputMode, value, id string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.editID = id
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()

	switch mode {
	case inputFilter:
		m.input.Prompt = "/ "
		m.input.Placeholder = "filter"
	case inputEdit:
		m.input.Prompt = "~ "
		m.input.Placeholder = ""
	default:
		m.input.Prompt = "+ "
		m.input.Placeholder = m.tab.placeholder()
	}

	cmd := m.input.Focus()

	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.mode == inputFilter {
			m.filter = ""
			m.clampCursor()
		}

		m.stopInput()

		return m, nil
	case "enter":
		m.submit(m.input.Value())
		m.stopInput()

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if m.mode == inputFilter {
		m.filter = m.input.Value()
		m.cursor = 0
	}

	return m, cmd
}

func (m *Model) stopInput() {
	m.mode = inputNone
	m.editID = ""
	m.input.Blur()
	m.input.Reset()
}

// submit applies the input line: add to the current tab, update the edited
// record, or set the filter.
func (m *Model) submit(value string) {
	trimmed := strings.TrimSpace(value)

	switch m.mode {
	case inputFilter:
		m.filter = trimmed
		m.cursor = 0

		return
	case inputEdit:
		if m.tab == TabNotes {
			m.report(m.notes.Update(m.editID, trimmed))
		} else {
			m.report(m.tasks.Update(m.editID, trimmed))
		}

		return
	}

	if trimmed == "" {
		return
	}

	switch m.tab {
	case TabTasks:
		m.report(m.tasks.Add(trimmed, false))
	case TabToday:
		m.report(m.tasks.Add(trimmed, true))
	case TabNotes:
		m.report(m.notes.Add(trimmed))
	}

	m.cursor = 0
}

// report shows err in the status line and pulls the latest snapshots.
func (m *Model) report(err error) {
	m.refresh()

	if err != nil {
		m.status = err.Error()
		m.isError = true
	}
}

func (m *Model) refresh() {
	m.applyTasks(m.tasks.Snapshot())
	m.applyNotes(m.notes.Snapshot())
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}

	return rows[m.cursor], true
}

// rows lists what the current tab shows, in display order.
func (m Model) rows() []row {
	if m.tab == TabNotes {
		keep := m.matching(len(m.noteItems), func(i int) string { return m.noteItems[i].Content })

		var rows []row

		for i, n := range m.noteItems {
			if keep[i] {
				rows = append(rows, row{kind: rowNote, pos: i, note: n})
			}
		}

		return rows
	}

	keep := m.matching(len(m.taskItems), func(i int) string { return m.taskItems[i].Text })

	var active, done []row

	for i, t := range m.taskItems {
		if !keep[i] || (m.tab == TabToday && !t.Today) {
			continue
		}

		r := row{kind: rowTask, pos: i, task: t}
		if t.Completed {
			done = append(done, r)
		} else {
			active = append(active, r)
		}
	}

	rows := active

	if len(done) > 0 {
		rows = append(rows, row{kind: rowCompletedHeader, pos: len(done)})

		if m.showCompleted {
			rows = append(rows, done...)
		}
	}

	return rows
}

// matching reports, per index, whether the item matches the filter.
func (m Model) matching(n int, text func(int) string) []bool {
	keep := make([]bool, n)

	if m.filter == "" {
		for i := range keep {
			keep[i] = true
		}

		return keep
	}

	names := make([]string, n)
	for i := range names {
		names[i] = text(i)
	}

	for _, match := range fuzzy.Find(m.filter, names) {
		keep[match.Index] = true
	}

	return keep
}
