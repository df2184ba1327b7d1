package binder

import (
	"errors"
	"fmt"
)

// Sentinel errors for binding and description.
var (
	// ErrMissingParameter is matched by *MissingParameterError.
	ErrMissingParameter = errors.New("binder: missing parameter")

	// ErrConstruction is matched by *ConstructionError.
	ErrConstruction = errors.New("binder: cannot construct value")

	// Description errors. These are configuration defects and are reported
	// when a signature is described, never while binding a request.
	ErrInvalidSignature   = errors.New("binder: unsupported function signature")
	ErrInvalidDefault     = errors.New("binder: invalid default value")
	ErrDuplicateParameter = errors.New("binder: conflicting duplicate parameter")
)

// MissingParameterError reports a required parameter that had no resolvable
// value in any source and no default.
type MissingParameterError struct {
	Name string
	Type string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("binder: parameter %q of type %s could not be matched", e.Name, e.Type)
}

// Is reports whether target is ErrMissingParameter.
func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// ConstructionError reports a type the binder cannot build a value of.
type ConstructionError struct {
	Type   string
	Reason string
}

func (e *ConstructionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("binder: cannot construct %s", e.Type)
	}
	return fmt.Sprintf("binder: cannot construct %s: %s", e.Type, e.Reason)
}

// Is reports whether target is ErrConstruction.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

// IsMissingParameter returns true if err is or wraps a MissingParameterError.
func IsMissingParameter(err error) bool {
	return errors.Is(err, ErrMissingParameter)
}

// AsMissingParameter extracts the MissingParameterError from err if present.
func AsMissingParameter(err error) (*MissingParameterError, bool) {
	var mp *MissingParameterError
	if errors.As(err, &mp) {
		return mp, true
	}
	return nil, false
}
