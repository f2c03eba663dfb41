package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")
)

// InvalidAmenityError reports an amenity identifier the schema does not recognize.
type InvalidAmenityError struct {
	Name string
}

func (e *InvalidAmenityError) Error() string {
	return fmt.Sprintf("invalid amenity %q", e.Name)
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *InvalidAmenityError) Unwrap() error {
	return ErrValidation
}

// MalformedRequestError reports a request body or query that cannot be processed.
type MalformedRequestError struct {
	Reason string
	Err    error
}

func (e *MalformedRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed request: %s: %v", e.Reason, e.Err)
	}
	return "malformed request: " + e.Reason
}

func (e *MalformedRequestError) Unwrap() error {
	return e.Err
}

// NewMalformedRequest is shorthand for a MalformedRequestError without a cause.
func NewMalformedRequest(format string, args ...any) *MalformedRequestError {
	return &MalformedRequestError{Reason: fmt.Sprintf(format, args...)}
}

// IntegrityViolationError reports stored data breaking an invariant,
// such as a primary-key lookup returning more than one row.
type IntegrityViolationError struct {
	Resource string
	Detail   string
}

func (e *IntegrityViolationError) Error() string {
	return fmt.Sprintf("integrity violation on %s: %s", e.Resource, e.Detail)
}

// ErrMultipleResults is the Detail used when a single-row lookup matches several rows.
const ErrMultipleResults = "expected a single object but got multiple results"

// Foreign-key violation operations.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ForeignKeyViolationError reports a statement rejected by a foreign-key constraint.
// On insert or update it means the referenced row is missing; on delete it
// means other rows still reference the target.
type ForeignKeyViolationError struct {
	Op         string
	Resource   string
	Constraint string
	Err        error
}

func (e *ForeignKeyViolationError) Error() string {
	switch e.Op {
	case OpDelete:
		return fmt.Sprintf("cannot delete %s: it is still referenced", e.Resource)
	default:
		return fmt.Sprintf("cannot %s %s: referenced resource does not exist", e.Op, e.Resource)
	}
}

func (e *ForeignKeyViolationError) Unwrap() error {
	return e.Err
}
