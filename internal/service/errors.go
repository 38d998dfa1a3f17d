// Package service provides business logic for the application.
package service

import (
	"fmt"
	"net/http"
)

// Error is the only error type this layer returns. Code carries the
// semantic status (400, 409 or 500), Message is user-safe, and Err
// holds the underlying cause for logging only - it is never rendered
// into a response.
type Error struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (code %d): %v", e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func invalid(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

func conflict(message string) *Error {
	return &Error{Code: http.StatusConflict, Message: message}
}

func internal(message string, err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: message, Err: err}
}
