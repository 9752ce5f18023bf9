package value

import (
	"errors"
	"fmt"
)

var (
	// ErrLiteralNotSupported is returned when the syntactic form of a literal cannot be
	// coerced at all, whatever the target type.
	ErrLiteralNotSupported = errors.New("literal not supported")
	// ErrSQLTypeNotSupported is returned when the declared type has no coercion path for the
	// given literal.
	ErrSQLTypeNotSupported = errors.New("sql type not supported")
)

// Error wraps a sentinel error with additional context
type Error struct {
	Err     error  // The underlying sentinel error
	Context string // Additional error context
}

// Error satisfies the error interface
func (e *Error) Error() string {
	if e.Context == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Context)
}

// Unwrap implements the errors.Unwrap interface for compatibility with errors.Is/As
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(err error, format string, args ...interface{}) *Error {
	return &Error{
		Err:     err,
		Context: fmt.Sprintf(format, args...),
	}
}
