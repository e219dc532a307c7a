package store_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tasknote/internal/record"
	"tasknote/internal/store"
)

// These tests use the real fsnotify watch.

const (
	eventually = 3 * time.Second
	poll       = 10 * time.Millisecond
	settle     = 300 * time.Millisecond
)

func Test_Integration_Own_Save_Does_Not_Reload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := openTasks(t, dir)
	require.True(t, s.Watching())

	rec := recordSnapshots[record.Task](t, s)

	require.NoError(t, s.Add("Buy milk", false))

	require.Never(t, func() bool { return rec.Count() > 1 }, settle, poll, "own write triggered a reload")
	require.False(t, s.Suppressing())
}

func Test_Integration_External_Edit_Propagates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := openTasks(t, dir)

	writeFile(t, tasksPath(dir), "- [ ] Written by editor\n- [x] Done #today\n")

	require.Eventually(t, func() bool {
		return slices.Equal(taskTexts(s), []string{"Written by editor", "Done"})
	}, eventually, poll)

	// Atomic replace by a sync tool.
	tmp := filepath.Join(dir, ".tasks.md.sync")
	writeFile(t, tmp, "- [ ] Restored\n")
	require.NoError(t, os.Rename(tmp, tasksPath(dir)))

	require.Eventually(t, func() bool {
		return slices.Equal(taskTexts(s), []string{"Restored"})
	}, eventually, poll)
}

func Test_Integration_SetDirectory_Stops_Watching_Old_File(t *testing.T) {
	t.Parallel()

	oldDir := t.TempDir()
	newDir := t.TempDir()
	writeFile(t, tasksPath(newDir), "- [ ] From new dir\n")

	s := openTasks(t, oldDir)
	require.NoError(t, s.SetDirectory(newDir))
	require.Equal(t, []string{"From new dir"}, taskTexts(s))

	writeFile(t, tasksPath(oldDir), "- [ ] Old dir edit\n")

	require.Never(t, func() bool {
		return slices.Contains(taskTexts(s), "Old dir edit")
	}, settle, poll)

	writeFile(t, tasksPath(newDir), "- [ ] New dir edit\n")

	require.Eventually(t, func() bool {
		return slices.Equal(taskTexts(s), []string{"New dir edit"})
	}, eventually, poll)
}

func Test_Integration_NoteStore_External_Edit_Propagates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := openNotes(t, dir)

	require.NoError(t, s.Add("local"))

	writeFile(t, notesPath(dir), "## 2024-03-15 09:30\n\nremote\n")

	require.Eventually(t, func() bool {
		notes := s.Notes()

		return len(notes) == 1 && notes[0].Content == "remote"
	}, eventually, poll)
}

func Test_Integration_Store_Keeps_Watching_After_Its_Own_Saves(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := openTasks(t, dir, store.WithLogger(nil))

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, s.Add(text, false))
		require.Eventually(t, func() bool { return !s.Suppressing() }, eventually, poll)
	}

	writeFile(t, tasksPath(dir), "- [ ] outside\n")

	require.Eventually(t, func() bool {
		return slices.Equal(taskTexts(s), []string{"outside"})
	}, eventually, poll)
}

func Test_Integration_Back_To_Back_Saves_Keep_IDs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := openTasks(t, dir)
	require.True(t, s.Watching())

	rec := recordSnapshots[record.Task](t, s)

	const adds = 5
	for range adds {
		require.NoError(t, s.Add("t", false))
	}

	ids := func() []string {
		var out []string
		for _, task := range s.Tasks() {
			out = append(out, task.ID)
		}

		return out
	}
	before := ids()

	require.Never(t, func() bool { return rec.Count() > adds }, settle, poll, "own saves triggered a reload")
	require.Equal(t, before, ids())
}
