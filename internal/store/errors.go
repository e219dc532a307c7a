package store

import "errors"

// ErrPersistence is matched by every [PersistenceError].
var ErrPersistence = errors.New("persistence failed")

// ErrClosed is returned by operations on a store after [Close].
var ErrClosed = errors.New("store closed")

// PersistenceError reports a failed write of the record file at Path.
//
// The in-memory collection already holds the change when this is returned;
// it is not rolled back.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return "save " + e.Path + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is reports true for [ErrPersistence].
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
