package middlewares

import (
	"errors"
	"fmt"
)

// PanicError is returned by Recover in place of a panic.
// Stack is nil when stack capture is disabled.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprint("panic: ", e.Value) }

// Unwrap exposes the panic value when it is an error, so errors.Is matches
// sentinel values passed to panic.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// AsPanicError finds the first *PanicError in err's chain.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}

// IsPanicError reports whether err's chain holds a *PanicError.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}
