// Package apperror carries HTTP status codes with errors returned by
// handlers.
package apperror

import (
	"net/http"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	// Fields holds per-field validation messages, if any.
	Fields map[string]string `json:"errors,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Unavailable(message string) *AppError {
	return New(http.StatusServiceUnavailable, message, nil)
}

// Validation reports user-correctable field errors.
func Validation(fields map[string]string) *AppError {
	e := New(http.StatusUnprocessableEntity, "Please fix the highlighted fields", nil)
	e.Fields = fields
	return e
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
