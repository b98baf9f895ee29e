package model

import "errors"

// ErrNotFound is returned when a role, company or application does not exist
// (or is not visible to the caller).
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint would be violated,
// e.g. a second company with the same name.
var ErrConflict = errors.New("already exists")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
