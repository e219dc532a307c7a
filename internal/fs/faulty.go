package fs

import (
	"os"
	"sync"
)

// Operation names accepted by [Faulty.Fail].
const (
	OpReadFile        = "read"
	OpWriteFileAtomic = "write"
	OpMkdirAll        = "mkdir"
	OpStat            = "stat"
	OpTouch           = "touch"
)

// Faulty wraps an [FS] and fails selected operations on demand.
//
// Operations without an armed failure pass through to the wrapped FS.
// Safe for concurrent use.
type Faulty struct {
	fs FS

	mu    sync.Mutex
	fails map[string]error
	calls map[string]int
}

// NewFaulty returns a [Faulty] wrapping fs. Panics if fs is nil.
func NewFaulty(fs FS) *Faulty {
	if fs == nil {
		panic("fs is nil")
	}

	return &Faulty{
		fs:    fs,
		fails: make(map[string]error),
		calls: make(map[string]int),
	}
}

// Fail makes every subsequent call of op return err wrapped in an
// [InjectedError]. A nil err disarms op.
func (f *Faulty) Fail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err == nil {
		delete(f.fails, op)

		return
	}

	f.fails[op] = err
}

// Calls returns how many times op was invoked, failed or not.
func (f *Faulty) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[op]
}

func (f *Faulty) check(op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[op]++

	if err, ok := f.fails[op]; ok {
		return &InjectedError{Op: op, Path: path, Err: err}
	}

	return nil
}

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	if err := f.check(OpReadFile, path); err != nil {
		return nil, err
	}

	return f.fs.ReadFile(path)
}

func (f *Faulty) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := f.check(OpWriteFileAtomic, path); err != nil {
		return err
	}

	return f.fs.WriteFileAtomic(path, data, perm)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}

	return f.fs.MkdirAll(path, perm)
}

func (f *Faulty) Stat(path string) (os.FileInfo, error) {
	if err := f.check(OpStat, path); err != nil {
		return nil, err
	}

	return f.fs.Stat(path)
}

func (f *Faulty) Exists(path string) (bool, error) {
	if err := f.check(OpStat, path); err != nil {
		return false, err
	}

	return f.fs.Exists(path)
}

func (f *Faulty) Touch(path string, perm os.FileMode) error {
	if err := f.check(OpTouch, path); err != nil {
		return err
	}

	return f.fs.Touch(path, perm)
}

// Compile-time interface check.
var _ FS = (*Faulty)(nil)
