// Package apperror separates expected domain failures from faults.
//
// An expected failure is an *Error carrying a Kind and a stable Reason that
// clients can match on. Any other error value is a fault: it is logged and
// reported as an internal error without details.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindState         Kind = "state"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
)

type Error struct {
	Kind    Kind
	Reason  string
	Message string
	cause   error
}

func New(kind Kind, reason, message string) *Error {
	return &Error{Kind: kind, Reason: reason, Message: message}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches on Reason so wrapped copies still compare equal to the sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Reason == t.Reason
}

// Wrap returns a copy of e with extra context and an optional cause.
func (e *Error) Wrap(message string, cause error) *Error {
	return &Error{Kind: e.Kind, Reason: e.Reason, Message: message, cause: cause}
}

// Withf returns a copy of e with a formatted message.
func (e *Error) Withf(format string, args ...interface{}) *Error {
	return &Error{Kind: e.Kind, Reason: e.Reason, Message: fmt.Sprintf(format, args...)}
}

// As extracts the domain error from err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

// HTTPStatus maps an error to a response status. Faults are 500.
func HTTPStatus(err error) int {
	e, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindState, KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
