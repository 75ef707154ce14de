package errors

import (
	"fmt"
)

// FileNotFound represents when we were unable to access a file
// because the path didn't exist.
type FileNotFound struct {
	Path string
}

func (err FileNotFound) Error() string {
	return fmt.Sprintf("%q does not exist", err.Path)
}

// NotTracked represents when an operation was attempted on a file that isn't
// in the mapping store.
type NotTracked struct {
	Path string
}

func (err NotTracked) Error() string {
	return fmt.Sprintf("%q is not being tracked", err.Path)
}

// AlreadyTracked represents when a file couldn't be tracked because it's
// already part of the mapping store, either as a source or as a destination.
type AlreadyTracked struct {
	Path string
	Role string
}

func (err AlreadyTracked) Error() string {
	return fmt.Sprintf("%q is already being tracked as a %s file", err.Path, err.Role)
}
