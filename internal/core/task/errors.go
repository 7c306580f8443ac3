package task

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidList is returned when a list selector is not one of the known lists,
	// or is not valid for the operation.
	ErrInvalidList = errors.New("invalid task list")
	// ErrParse is wrapped by every ParseError.
	ErrParse = errors.New("invalid timestamp")
	// ErrMissingID is returned when a task without a uuid is added.
	ErrMissingID = errors.New("task uuid is required")
	// ErrDuplicate is returned when a task uuid already exists in a collection.
	ErrDuplicate = errors.New("duplicate task uuid")
)

// ParseError reports a timestamp field that could not be parsed.
type ParseError struct {
	UUID  string
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("task %q: %s %q: %v", e.UUID, e.Field, e.Value, ErrParse)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}
