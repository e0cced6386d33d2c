package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a mutation targets an id (or composite key) that is no longer present.
var ErrNotFound = errors.New("not found")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports domain checks that struct validation cannot express (e.g. a malformed boolean).
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// ArgumentError reports a value outside the accepted domain of an operation (e.g. an unknown mood).
type ArgumentError struct {
	msg string
}

func NewArgumentError(format string, args ...interface{}) error {
	return &ArgumentError{fmt.Sprintf(format, args...)}
}

func (err *ArgumentError) Error() string {
	return err.msg
}

func IsArgumentError(err error) bool {
	_, ok := errors.Cause(err).(*ArgumentError)
	return ok
}

func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}
