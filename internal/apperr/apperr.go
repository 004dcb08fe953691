// Package apperr defines the error kinds shared by the scanner, resolver,
// preference store and launcher.
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	// ErrInvalidInput marks blank or malformed arguments (a caller bug).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a missing vault root or note file.
	ErrNotFound = errors.New("not found")
	// ErrPermission marks an unreadable root or note file.
	ErrPermission = errors.New("permission denied")
	// ErrParse marks a note that could not be read or decoded.
	ErrParse = errors.New("malformed note")
	// ErrLaunch marks a deep link that no handler accepted.
	ErrLaunch = errors.New("launch failed")
)

// Error carries the operation and resource that failed along with its kind.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New builds an *Error of the given kind.
func New(kind error, op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// Invalid is shorthand for an ErrInvalidInput with a formatted reason.
func Invalid(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: ErrInvalidInput, Err: fmt.Errorf(format, args...)}
}
