package testutil

import (
	"sync"

	"tasknote/internal/watch"
)

// Watches is a [watch.Factory] whose callbacks are fired by the test
// instead of the OS.
type Watches struct {
	mu  sync.Mutex
	all []*fakeWatch
}

type fakeWatch struct {
	onChange func()
}

func (w *fakeWatch) Restart() error { return nil }

func (w *fakeWatch) Stop() {}

// Factory returns the factory to hand to the store.
func (ws *Watches) Factory() watch.Factory {
	return func(_ string, onChange func()) (watch.Watcher, error) {
		ws.mu.Lock()
		defer ws.mu.Unlock()

		w := &fakeWatch{onChange: onChange}
		ws.all = append(ws.all, w)

		return w, nil
	}
}

// Fire delivers one change event from the most recent watch.
func (ws *Watches) Fire() {
	ws.mu.Lock()

	if len(ws.all) == 0 {
		ws.mu.Unlock()

		return
	}

	w := ws.all[len(ws.all)-1]
	ws.mu.Unlock()

	w.onChange()
}

// FireStale delivers an event from every watch but the most recent, like
// late OS events after the store moved away.
func (ws *Watches) FireStale() {
	ws.mu.Lock()
	stale := append([]*fakeWatch(nil), ws.all[:max(len(ws.all)-1, 0)]...)
	ws.mu.Unlock()

	for _, w := range stale {
		w.onChange()
	}
}
