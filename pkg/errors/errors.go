// Package errors provides structured error types for Pandalearn.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the terminal browser and the web API
//   - Machine-readable error codes for JSON error bodies
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Content or route lookups that found nothing
//   - *_UNAVAILABLE: Optional environment pieces (storage, OS signal) that are missing
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeTopicNotFound, "unknown topic %q", key)
//	if errors.Is(err, errors.ErrCodeTopicNotFound) {
//	    // Render the 404 page
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorageUnavailable, origErr, "open redis at %s", addr)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidTheme  Code = "INVALID_THEME"
	ErrCodeInvalidKey    Code = "INVALID_KEY"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Lookup errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeTopicNotFound   Code = "TOPIC_NOT_FOUND"
	ErrCodeExampleNotFound Code = "EXAMPLE_NOT_FOUND"
	ErrCodeRouteNotFound   Code = "ROUTE_NOT_FOUND"

	// Environment errors
	ErrCodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	ErrCodeSignalUnavailable  Code = "SIGNAL_UNAVAILABLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports whether err carries any of the lookup codes.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeTopicNotFound, ErrCodeExampleNotFound, ErrCodeRouteNotFound:
		return true
	}
	return false
}
