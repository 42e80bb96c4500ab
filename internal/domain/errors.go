package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrKind classifies an Error so the handler boundary can translate it to an
// HTTP status without inspecting messages.
type ErrKind int

const (
	ErrValidation ErrKind = iota
	ErrAuthentication
	ErrAuthorization
	ErrNotFound
	ErrInvalidTransition
	ErrStore
)

// Error is the single error type crossing the domain boundary.
type Error struct {
	Kind    ErrKind
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

// HTTPStatus maps the error kind to its response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case ErrValidation:
		return http.StatusBadRequest
	case ErrAuthentication:
		return http.StatusUnauthorized
	case ErrAuthorization:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: ErrAuthentication, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: ErrAuthorization, Message: msg}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func TransitionError(from, to OrderStatus) *Error {
	return &Error{
		Kind:    ErrInvalidTransition,
		Message: fmt.Sprintf("order status cannot change from %q to %q", from, to),
	}
}

// StoreError wraps a backend failure. The message is safe for clients; the
// wrapped error is for server-side logs only.
func StoreError(err error) *Error {
	return &Error{Kind: ErrStore, Message: "storage operation failed", Err: err}
}

// AsError extracts a *Error from err, if any.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
