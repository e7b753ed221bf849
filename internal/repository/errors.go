package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateEntry is returned when an insert violates an engagement
	// entity's composite-key uniqueness constraint
	ErrDuplicateEntry = errors.New("entry with this key already exists")
)
