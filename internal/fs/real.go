package fs

import (
	"bytes"
	"errors"
	"os"

	"github.com/natefinch/atomic"
)

// Real implements [FS] using the real filesystem.
//
// Most methods are passthroughs to the [os] package with identical behavior
// and error semantics. The exceptions are [Real.Exists] which wraps
// [os.Stat], [Real.WriteFileAtomic] which replaces the file by rename, and
// [Real.Touch].
type Real struct{}

// NewReal returns a new [Real] filesystem.
func NewReal() *Real {
	return &Real{}
}

// A passthrough wrapper for [os.ReadFile].
func (r *Real) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileAtomic writes to a temp file in the same directory and renames it
// over path. An existing file keeps its permissions; a new one gets perm.
func (r *Real) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	existed, err := r.Exists(path)
	if err != nil {
		return err
	}

	err = atomic.WriteFile(path, bytes.NewReader(data))
	if err != nil {
		return err
	}

	if !existed {
		return os.Chmod(path, perm)
	}

	return nil
}

// A passthrough wrapper for [os.MkdirAll].
func (r *Real) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// A passthrough wrapper for [os.Stat].
func (r *Real) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Exists checks if a file exists using [os.Stat].
// Returns (true, nil) if the file exists, (false, nil) if it does not,
// or (false, err) for other errors.
func (r *Real) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// Touch creates path with O_EXCL so a file created concurrently by someone
// else is never truncated.
func (r *Real) Touch(path string, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}

		return err
	}

	return f.Close()
}

// Compile-time interface check.
var _ FS = (*Real)(nil)
