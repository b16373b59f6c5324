// Package apperrors defines the typed errors shared by services and handlers.
//
// Services return *Error values carrying an HTTP status classification; the
// handler layer converts them into the JSON error envelope exactly once.
package apperrors

import (
	"errors"
	"net/http"
)

// Error is a domain failure with an HTTP status classification.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with an explicit status.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// BadRequest flags malformed or out-of-range input (400).
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized flags a missing, invalid or expired credential (401).
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden flags an authenticated caller that does not own the resource (403).
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// NotFound flags a resource id that does not resolve (404).
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict flags a duplicate unique key such as an email address (409).
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// PayloadTooLarge flags an upload exceeding the size cap (413).
func PayloadTooLarge(message string) *Error {
	return New(http.StatusRequestEntityTooLarge, message)
}

// UnsupportedMediaType flags a disallowed mime type (415).
func UnsupportedMediaType(message string) *Error {
	return New(http.StatusUnsupportedMediaType, message)
}

// Internal flags a collaborator failure (500).
func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// StatusOf returns the HTTP status carried by err, or 500 for untyped errors.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the message carried by err. Untyped errors are masked with
// a generic message so internal details never reach the client.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
