// Package apperror defines the error taxonomy shared by all request
// handlers. Handlers convert every failure to one of these kinds at the
// request boundary; the client sees only an HTTP status and a short
// human-readable message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an application error.
type Kind int

const (
	// Unknown is for unclassified errors.
	Unknown Kind = iota
	// Validation covers missing or malformed request fields.
	Validation
	// Conflict marks a duplicate-email registration.
	Conflict
	// InvalidCredentials covers a failed sign-in (unknown email or wrong
	// password, indistinguishable to the caller).
	InvalidCredentials
	// InvalidResetCode marks a wrong or expired password reset code.
	InvalidResetCode
	// Unauthorized covers a missing, invalid or expired bearer token.
	Unauthorized
	// NotFound marks an unknown id, ticket, user or event.
	NotFound
	// Internal covers unexpected failures such as store errors.
	Internal
)

// Error carries a kind, a client-safe message and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case Validation, Conflict, InvalidCredentials, InvalidResetCode:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewValidation(message string, err error) *Error {
	return New(Validation, message, err)
}

func NewConflict(message string) *Error {
	return New(Conflict, message, nil)
}

func NewInvalidCredentials() *Error {
	return New(InvalidCredentials, "Invalid credentials", nil)
}

func NewInvalidResetCode(message string) *Error {
	return New(InvalidResetCode, message, nil)
}

func NewUnauthorized(message string) *Error {
	return New(Unauthorized, message, nil)
}

func NewNotFound(message string) *Error {
	return New(NotFound, message, nil)
}

func NewInternal(message string, err error) *Error {
	return New(Internal, message, err)
}

// From returns err as an *Error, wrapping non-application errors as
// Internal so that unclassified failures never leak details to the client.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("Server error", err)
}
