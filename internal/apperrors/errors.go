package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. Transport code switches on the kind,
// never on the message text.
type Kind int

const (
	// KindValidation means the input was missing or malformed.
	KindValidation Kind = iota
	// KindConflict means a uniqueness constraint was violated.
	KindConflict
	// KindNotFound means the referenced entity does not exist.
	KindNotFound
	// KindAuth means bad credentials or an invalid/expired token.
	KindAuth
	// KindInternal means a collaborator (storage, mail, signing) failed.
	KindInternal
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the closed error type returned by the service layer
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two errors by kind so errors.Is(err, apperrors.NotFound("")) works
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Validation builds a validation error
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Conflict builds a conflict error
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NotFound builds a not-found error
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Auth builds an authentication error
func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

// Internal builds an internal error wrapping the collaborator failure
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf extracts the kind from an error, defaulting to KindInternal for
// anything outside the closed set.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
