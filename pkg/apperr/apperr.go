// Package apperr is the error taxonomy shared by services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, programmatic error class.
type Code string

const (
	CodeInvalid      Code = "invalid"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeValidation   Code = "validation"
	CodeInternal     Code = "internal"
)

// Error carries a code, a client-safe message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches code and message to err.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Internal wraps an unexpected failure. The message shown to clients is fixed.
func Internal(err error) *Error {
	return Wrap(err, CodeInternal, "Internal Server Error")
}

// NotFound reports a missing entity.
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// IsCode reports whether err, or anything it wraps, is an *Error with code.
func IsCode(err error, code Code) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// From returns err as an *Error, treating unknown errors as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// HTTPStatus maps a code onto a response status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeInvalid:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
