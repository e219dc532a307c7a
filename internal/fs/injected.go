package fs

import "errors"

// InjectedError marks an error as intentionally injected by [Faulty].
//
// It wraps the underlying error so errors.Is/As continue to work.
//
// All methods panic if the receiver or Err is nil.
type InjectedError struct {
	Op   string
	Path string
	Err  error
}

// Error returns "<op> <path>: <cause>". Panics if e or e.Err is nil.
func (e *InjectedError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error. Panics if e is nil.
func (e *InjectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was injected by [Faulty].
// Returns false if err is nil.
func IsInjected(err error) bool {
	if err == nil {
		return false
	}

	var injected *InjectedError

	return errors.As(err, &injected)
}
