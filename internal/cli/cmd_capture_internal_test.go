package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasknote/internal/record"
	"tasknote/internal/store"
	"tasknote/internal/watch"
)

type nopWatch struct{}

func (nopWatch) Restart() error { return nil }
func (nopWatch) Stop()          {}

func nopWatchFactory(string, func()) (watch.Watcher, error) { return nopWatch{}, nil }

func Test_Capture_Note_Confirmation_When_Notes_Emptied_During_Add(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	notes, err := store.OpenNotes(dir, store.WithWatchFactory(nopWatchFactory))
	if err != nil {
		t.Fatalf("OpenNotes: %v", err)
	}

	t.Cleanup(notes.Close)

	// An external writer empties notes.md right after the save.
	emptied := false

	unsubscribe := notes.Subscribe(func(store.Snapshot[record.Note]) {
		if emptied {
			return
		}

		emptied = true

		err := os.WriteFile(filepath.Join(dir, store.NoteFile), nil, 0o644)
		if err != nil {
			t.Errorf("truncate: %v", err)
		}

		notes.Load()
	})
	t.Cleanup(unsubscribe)

	var out, errOut bytes.Buffer

	c := &captureSession{o: NewIO(&out, &errOut), notes: notes}

	err = c.addNote("remember this")
	if err != nil {
		t.Fatalf("addNote: %v", err)
	}

	if got, want := out.String(), "note added: remember this\n"; !strings.Contains(got, want) {
		t.Fatalf("stdout=%q, want to contain %q", got, want)
	}

	if got := len(notes.Notes()); got != 0 {
		t.Fatalf("len(notes)=%d, want=0", got)
	}
}
