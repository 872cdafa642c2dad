package domain

import (
	"errors"
	"fmt"
)

// InvalidArgumentError is a caller-recoverable validation failure. Its message
// is safe to return to clients verbatim.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// InvalidArgument builds an InvalidArgumentError from a format string.
func InvalidArgument(format string, args ...interface{}) error {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidArgument reports whether err, or anything it wraps, is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}
