package store

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when an insert collides with the
	// unique index on users.email.
	ErrDuplicateEmail = errors.New("email already registered")
)
