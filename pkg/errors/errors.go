package errors

import (
	goErrors "errors"
)

// New returns an error with the given message.
// It's a drop-in replacement for the standard library's errors.New so that
// callers don't have to import both packages.
func New(msg string) error {
	return goErrors.New(msg)
}

// ContextError wraps an error with a short description of the operation that
// failed. Chained ContextErrors read like a call stack:
// "load mappings: read file: permission denied".
type ContextError struct {
	Context string
	Err     error
}

// WithContext annotates err with context.
func WithContext(err error, context string) error {
	return ContextError{Context: context, Err: err}
}

func (err ContextError) Error() string {
	return err.Context + ": " + err.Err.Error()
}

// Unwrap makes ContextError compatible with the standard errors.Is/As helpers.
func (err ContextError) Unwrap() error {
	return err.Err
}

// RootCause returns the innermost error in a chain of ContextErrors.
func RootCause(err error) error {
	for {
		ctxErr, ok := err.(ContextError)
		if !ok {
			return err
		}
		err = ctxErr.Err
	}
}
