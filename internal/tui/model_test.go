package tui_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"tasknote/internal/record"
	"tasknote/internal/store"
	"tasknote/internal/tui"
	"tasknote/internal/watch"
)

type nopWatch struct{}

func (nopWatch) Restart() error { return nil }
func (nopWatch) Stop()          {}

func nopFactory(string, func()) (watch.Watcher, error) {
	return nopWatch{}, nil
}

func openStores(t *testing.T) (*store.TaskStore, *store.NoteStore) {
	t.Helper()

	dir := t.TempDir()

	tasks, err := store.OpenTasks(dir, store.WithWatchFactory(nopFactory))
	require.NoError(t, err)
	t.Cleanup(tasks.Close)

	notes, err := store.OpenNotes(dir, store.WithWatchFactory(nopFactory))
	require.NoError(t, err)
	t.Cleanup(notes.Close)

	return tasks, notes
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func send(t *testing.T, m tea.Model, msgs ...tea.Msg) tui.Model {
	t.Helper()

	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}

	model, ok := m.(tui.Model)
	require.True(t, ok)

	return model
}

func taskTexts(tasks []record.Task) []string {
	texts := make([]string, 0, len(tasks))
	for _, task := range tasks {
		texts = append(texts, task.Text)
	}

	return texts
}

func Test_Model_Adds_Task_When_Input_Submitted(t *testing.T) {
	t.Parallel()

	tasks, notes := openStores(t)

	m := send(t, tui.New(tasks, notes), runes("a"), runes("buy milk"), enter)

	require.Equal(t, []string{"buy milk"}, taskTexts(tasks.Tasks()))
	require.False(t, tasks.Tasks()[0].Today)
	require.Contains(t, m.View(), "buy milk")
	require.Contains(t, m.View(), "1 active")
}

func Test_Model_Adds_Today_Task_When_On_Today_Tab(t *testing.T) {
	t.Parallel()

	tasks, notes := openStores(t)

	m := send(t, tui.New(tasks, notes), tab, runes("a"), runes("call bob"), enter)

	got := tasks.Tasks()
	require.Len(t, got, 1)
	require.True(t, got[0].Today)
	require.Contains(t, m.View(), "1 today")
}

func Test_Model_Ignores_Blank_Input(t *testing.T) {
	t.Parallel()

	tasks, notes := openStores(t)

	send(t, tui.New(tasks, notes), runes("a"), runes("   "), enter)

	require.Empty(t, tasks.Tasks())
}

func Test_Model_Discards_Input_When_Escape_Pressed(t *testing.T) {
	t.Parallel()

	tasks, notes := openStores(t)

	m := send(t, tui.New(tasks, notes), runes("a"), runes("draft"), esc)

	require.Empty(t, tasks.Tasks())
	require.NotContains(t, m.View(), "draft")
}

func Test_Model_Completes_Task_And_Shows_Completed_Section(t *testing.T) {
	t.Parallel()

	tasks, notes := openStores(t)
	require.NoError(t, tasks.Add("write report", false))

	m := send(t, tui.New(tasks, notes), runes("x"))

	require.True(t, tasks.Tasks()[0].Completed)
	require.Contains(t, m.View(), "Completed (1)")
	require.NotContains(t, m.View(), "write report")

	m = send(t, m, runes("c"))
	require.Contains(t, m.View(), "write report")
}

func Test_Model_Toggles_Today_When_T_Pressed(t *testing.T) {
	t.Parallel()

	tasks, notes := openStores(t)
	require.NoError(t, tasks.Add("plan week", false))

	send(t, tui.New(tasks, notes), runes("t"))

	require.True(t, tasks.Tasks()[0].Today)
}

func Test_Model_Edits_Selected_Task(t *testing.T) {
	t.Parallel()

	tasks, notes := openStores(t)
	require.NoError(t, tasks.Add("buy milk", false))

	send(t, tui.New(tasks, notes), runes("e"), runes(" and eggs"), enter)

	require.Equal(t, []string{"buy milk and eggs"}, taskTexts(tasks.Tasks()))
}

func Test_Model_Deletes_Selected_Task(t *testing.T) {
	t.Parallel()

	tasks, notes := openStores(t)
	require.NoError(t, tasks.Add("first", false))
	require.NoError(t, tasks.Add("second", false))

	m := send(t, tui.New(tasks, notes), runes("j"), runes("d"))

	require.Equal(t, []string{"second"}, taskTexts(tasks.Tasks()))
	require.Contains(t, m.View(), "second")
}

func Test_Model_Adds_And_Deletes_Note_On_Notes_Tab(t *testing.T) {
	t.Parallel()

	tasks, notes := openStores(t)

	m := send(t, tui.New(tasks, notes), runes("3"), runes("a"), runes("remember **this**"), enter)

	require.Len(t, notes.Notes(), 1)
	require.Equal(t, "remember **this**", notes.Notes()[0].Content)
	require.Contains(t, m.View(), "remember this")
	require.Contains(t, m.View(), "1 notes")

	send(t, m, runes("d"))
	require.Empty(t, notes.Notes())
}

func Test_Model_Filters_Rows(t *testing.T) {
	t.Parallel()

	tasks, notes := openStores(t)
	require.NoError(t, tasks.Add("buy milk", false))
	require.NoError(t, tasks.Add("call bob", false))

	m := send(t, tui.New(tasks, notes), runes("/"), runes("bob"), enter)

	view := m.View()
	require.Contains(t, view, "call bob")
	require.NotContains(t, view, "buy milk")

	m = send(t, m, esc)
	require.Contains(t, m.View(), "buy milk")
}

func Test_Model_Picks_Up_External_Reload(t *testing.T) {
	t.Parallel()

	tasks, notes := openStores(t)

	m := tui.New(tasks, notes)

	var got store.Snapshot[record.Task]

	unsub := tasks.Subscribe(func(s store.Snapshot[record.Task]) { got = s })
	require.NoError(t, writeTasks(tasks.Path(), "- [ ] from elsewhere\n"))
	tasks.Load()
	unsub()

	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	require.NotContains(t, m.View(), "from elsewhere")

	m = send(t, m, tui.TasksChanged(got))
	require.Contains(t, m.View(), "from elsewhere")

	stale := got
	stale.Version--
	stale.Items = nil

	m = send(t, m, tui.TasksChanged(stale))
	require.Contains(t, m.View(), "from elsewhere")
}

func Test_Run_Quits_When_Q_Read(t *testing.T) {
	t.Parallel()

	tasks, notes := openStores(t)
	require.NoError(t, tasks.Add("visible", false))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out bytes.Buffer

	err := tui.Run(ctx, tasks, notes, tui.Options{
		In:       strings.NewReader("q"),
		Out:      &out,
		NoScreen: true,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "visible")
}
