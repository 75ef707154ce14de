package errors

import (
	"fmt"
)

// FriendlyError is an error whose message is meant to be shown to the user
// verbatim, without any "context: " prefixes.
type FriendlyError struct {
	Message string
}

// NewFriendlyError creates a FriendlyError from a format string.
func NewFriendlyError(format string, args ...interface{}) error {
	return FriendlyError{Message: fmt.Sprintf(format, args...)}
}

func (err FriendlyError) Error() string {
	return err.Message
}

// FriendlyMessage returns the user-facing message.
func (err FriendlyError) FriendlyMessage() string {
	return err.Message
}

type friendlyError interface {
	FriendlyMessage() string
}

// GetPrintableMessage returns the message that should be printed to the user.
// If any error in the chain has a friendly message, that message is used.
// Otherwise, the full error string is returned.
func GetPrintableMessage(err error) string {
	for curr := err; curr != nil; {
		if friendly, ok := curr.(friendlyError); ok {
			return friendly.FriendlyMessage()
		}

		ctxErr, ok := curr.(ContextError)
		if !ok {
			break
		}
		curr = ctxErr.Err
	}
	return err.Error()
}
