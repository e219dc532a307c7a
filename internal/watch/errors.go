package watch

import "errors"

// ErrUnavailable is matched by every [UnavailableError].
var ErrUnavailable = errors.New("file watch unavailable")

// UnavailableError reports that a watch on Path could not be established.
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return "watch " + e.Path + ": " + ErrUnavailable.Error()
	}

	return "watch " + e.Path + ": " + ErrUnavailable.Error() + ": " + e.Err.Error()
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Is reports true for [ErrUnavailable] so callers need not type-assert.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}
