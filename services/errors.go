package services

import (
	"errors"
	"fmt"
)

// Error is a domain error: a business-rule violation that should surface to
// the client as a 400 with its message, as opposed to an infrastructure
// failure which stays a 500.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// Domain marks the error as a business-rule violation; the response
// translator keys off this method rather than importing this package.
func (e *Error) Domain() bool { return true }

// Errorf builds a domain error with a formatted message.
func Errorf(format string, args ...any) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// IsDomain reports whether err (or anything it wraps) is a domain error.
func IsDomain(err error) bool {
	var de *Error
	return errors.As(err, &de)
}
