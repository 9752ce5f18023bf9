package row

import (
	"errors"
	"fmt"
)

var (
	// ErrLackOfRequiredColumn is returned when an explicit column list omits a schema column.
	ErrLackOfRequiredColumn = errors.New("lack of required column")
	// ErrLackOfRequiredValue is returned when a literal row is shorter than the position a
	// column resolved to.
	ErrLackOfRequiredValue = errors.New("lack of required value")
	// ErrUnreachable is returned when the builder receives no literal rows at all. Callers
	// must never let that happen.
	ErrUnreachable = errors.New("unreachable")
	// ErrConflictOnEmptyRow is returned when the first value of an empty row is requested.
	ErrConflictOnEmptyRow = errors.New("conflict! row cannot be empty")
)

// Error attributes a row error to the column it was raised for.
type Error struct {
	err    error
	column string
}

// Error satisfies the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.err.Error(), e.column)
}

// Unwrap implements the errors.Unwrap interface for compatibility with errors.Is/As
func (e *Error) Unwrap() error {
	return e.err
}

// Column is the name of the schema column the error refers to.
func (e *Error) Column() string {
	return e.column
}

func newColumnError(err error, column string) *Error {
	return &Error{
		err:    err,
		column: column,
	}
}
