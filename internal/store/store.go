// Package store keeps an in-memory record collection in sync with a markdown
// file that other programs may edit at the same time.
//
// Each store owns one file (tasks.md or notes.md) inside a directory. The
// in-memory collection is the source of truth: every mutation rewrites the
// whole file atomically. A file watch reports changes; changes caused by the
// store's own save are swallowed through a suppression flag, everything else
// triggers a full reload.
//
// All state is guarded by one mutex per store. Subscribers are notified
// after the mutex is released.
package store

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"tasknote/internal/fs"
	"tasknote/internal/watch"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Option configures a store at open time.
type Option func(*options)

type options struct {
	fs       fs.FS
	logger   *slog.Logger
	newWatch watch.Factory
}

// WithFS sets the filesystem used for reads and writes. Default is [fs.Real].
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithLogger sets the logger. Default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithWatchFactory replaces the fsnotify watch, mostly for tests.
func WithWatchFactory(factory watch.Factory) Option {
	return func(o *options) {
		o.newWatch = factory
	}
}

// Snapshot is a copy of a store's collection at one point in time.
//
// Version increases with every change. Observers that receive snapshots
// from several goroutines can drop any snapshot older than the last one seen.
type Snapshot[T any] struct {
	Items   []T
	Version uint64
}

type format[T any] struct {
	kind   string
	file   string
	encode func([]T) string
	decode func(string) []T
}

// core is the store machinery shared by [TaskStore] and [NoteStore].
type core[T any] struct {
	format   format[T]
	fs       fs.FS
	log      *slog.Logger
	newWatch watch.Factory

	mu       sync.Mutex
	items    []T
	dir      string
	path     string
	suppress bool
	watcher  watch.Watcher
	gen      uint64
	version  uint64
	closed   bool

	subsMu  sync.Mutex
	subs    map[uint64]func(Snapshot[T])
	nextSub uint64
}

func newCore[T any](f format[T], opts []Option) *core[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.fs == nil {
		o.fs = fs.NewReal()
	}

	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	if o.newWatch == nil {
		o.newWatch = watch.NewFactory()
	}

	return &core[T]{
		format:   f,
		fs:       o.fs,
		log:      o.logger.With("kind", f.kind),
		newWatch: o.newWatch,
		items:    []T{},
		subs:     make(map[uint64]func(Snapshot[T])),
	}
}

func (c *core[T]) open(dir string) error {
	if dir == "" {
		return errors.New("open " + c.format.kind + " store: directory is empty")
	}

	c.mu.Lock()
	c.attachLocked(dir) //nolint:errcheck // watch failure is logged, store stays usable unwatched
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap.Snapshot)

	return nil
}

// attachLocked points the store at dir, reloads and starts a fresh watch.
// A watch failure is returned and leaves the store unwatched.
func (c *core[T]) attachLocked(dir string) error {
	c.dir = filepath.Clean(dir)
	c.path = filepath.Join(c.dir, c.format.file)
	c.suppress = false

	err := c.fs.MkdirAll(c.dir, dirPerm)
	if err != nil {
		c.log.Warn("create directory failed", "path", c.dir, "error", err)
	}

	c.loadLocked()

	err = c.fs.Touch(c.path, filePerm)
	if err != nil {
		c.log.Warn("create file failed", "path", c.path, "error", err)
	}

	return c.startWatchLocked()
}

// Load re-reads the file and replaces the collection. A missing or
// unreadable file yields an empty collection. No-op after Close.
func (c *core[T]) Load() {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()

		return
	}

	c.loadLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap.Snapshot)
}

func (c *core[T]) loadLocked() {
	c.replaceLocked(c.readLocked())
}

// readLocked returns the file contents. A missing or unreadable file reads
// as empty.
func (c *core[T]) readLocked() string {
	data, err := c.fs.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.log.Warn("read failed", "path", c.path, "error", err)
		}

		return ""
	}

	return string(data)
}

func (c *core[T]) replaceLocked(content string) {
	c.items = c.format.decode(content)
	c.version++

	c.log.Debug("loaded", "path", c.path, "count", len(c.items))
}

// mutate applies change to the collection and saves. change reports false
// when nothing changed, in which case nothing is saved or published.
func (c *core[T]) mutate(change func([]T) ([]T, bool)) error {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()

		return ErrClosed
	}

	next, changed := change(c.items)
	if !changed {
		c.mu.Unlock()

		return nil
	}

	c.items = next
	c.version++
	snap := c.snapshotLocked()
	err := c.saveLocked()
	c.mu.Unlock()

	c.notify(snap.Snapshot)

	return err
}

func (c *core[T]) saveLocked() error {
	content := c.format.encode(c.items)

	c.suppress = true

	err := c.fs.WriteFileAtomic(c.path, []byte(content), filePerm)
	if err != nil {
		c.suppress = false
		c.log.Error("save failed", "path", c.path, "count", len(c.items), "error", err)

		return &PersistenceError{Path: c.path, Err: err}
	}

	c.log.Debug("saved", "path", c.path, "count", len(c.items))

	return nil
}

func (c *core[T]) startWatchLocked() error {
	c.gen++
	gen := c.gen

	w, err := c.newWatch(c.path, func() { c.changed(gen) })
	if err != nil {
		c.watcher = nil
		c.log.Warn("watch unavailable, external edits need an explicit reload", "path", c.path, "error", err)

		return err
	}

	c.watcher = w

	return nil
}

// stopWatchLocked stops the current watch and invalidates its callbacks.
func (c *core[T]) stopWatchLocked() {
	c.gen++

	if c.watcher == nil {
		return
	}

	c.watcher.Stop()
	c.watcher = nil
}

// changed is the watch callback for the watch started as generation gen.
func (c *core[T]) changed(gen uint64) {
	c.mu.Lock()

	if c.closed || gen != c.gen {
		c.mu.Unlock()

		return
	}

	if c.suppress {
		c.suppress = false
		c.mu.Unlock()

		c.log.Debug("own write ignored", "path", c.path)

		return
	}

	// Events left over from a burst of our own saves find the file holding
	// exactly what is in memory. Reloading would only regenerate ids.
	content := c.readLocked()
	if content == c.format.encode(c.items) {
		c.mu.Unlock()

		c.log.Debug("file matches memory, reload skipped", "path", c.path)

		return
	}

	c.replaceLocked(content)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.log.Info("reloaded after external change", "path", snap.path, "count", len(snap.Items))

	c.notify(snap.Snapshot)
}

// SetDirectory moves the store to dir: the old watch is stopped, the
// collection is replaced by the contents of the file in dir and a new watch
// is started there. Returns the watch error, if any; the store is usable
// either way.
func (c *core[T]) SetDirectory(dir string) error {
	if dir == "" {
		return errors.New("set directory: directory is empty")
	}

	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()

		return ErrClosed
	}

	c.stopWatchLocked()
	err := c.attachLocked(dir)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.log.Info("directory changed", "path", snap.path, "count", len(snap.Items), "watching", err == nil)

	c.notify(snap.Snapshot)

	return err
}

// RestartWatch re-establishes the watch on the current path.
func (c *core[T]) RestartWatch() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	if c.watcher == nil {
		return c.startWatchLocked()
	}

	err := c.watcher.Restart()
	if err != nil {
		c.stopWatchLocked()
		c.log.Warn("watch restart failed", "path", c.path, "error", err)

		return err
	}

	return nil
}

// Close stops the watch. Later callbacks and mutations are rejected.
// Idempotent.
func (c *core[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.stopWatchLocked()
}

// Subscribe registers fn for every collection change and returns a func
// that removes it. fn runs on the goroutine that made the change and must
// not block.
func (c *core[T]) Subscribe(fn func(Snapshot[T])) func() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	var once sync.Once

	return func() {
		once.Do(func() {
			c.subsMu.Lock()
			delete(c.subs, id)
			c.subsMu.Unlock()
		})
	}
}

func (c *core[T]) notify(snap Snapshot[T]) {
	c.subsMu.Lock()
	fns := make([]func(Snapshot[T]), 0, len(c.subs))

	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Snapshot returns a copy of the current collection.
func (c *core[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked().Snapshot
}

// Dir returns the directory holding the record file.
func (c *core[T]) Dir() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dir
}

// Path returns the record file path.
func (c *core[T]) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.path
}

// Watching reports whether a file watch is active.
func (c *core[T]) Watching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.watcher != nil
}

type lockedSnapshot[T any] struct {
	Snapshot[T]

	path string
}

func (c *core[T]) snapshotLocked() lockedSnapshot[T] {
	return lockedSnapshot[T]{
		Snapshot: Snapshot[T]{Items: slices.Clone(c.items), Version: c.version},
		path:     c.path,
	}
}

// replaceFirst returns a copy of items with the first element matching id
// replaced by update, or false if no element matches.
func replaceFirst[T any](items []T, idOf func(T) string, id string, update func(T) T) ([]T, bool) {
	i := slices.IndexFunc(items, func(item T) bool { return idOf(item) == id })
	if i < 0 {
		return items, false
	}

	next := slices.Clone(items)
	next[i] = update(next[i])

	return next, true
}

func removeFirst[T any](items []T, idOf func(T) string, id string) ([]T, bool) {
	i := slices.IndexFunc(items, func(item T) bool { return idOf(item) == id })
	if i < 0 {
		return items, false
	}

	return slices.Delete(slices.Clone(items), i, i+1), true
}

func prepend[T any](items []T, item T) []T {
	next := make([]T, 0, len(items)+1)
	next = append(next, item)

	return append(next, items...)
}
