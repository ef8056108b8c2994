// Package errors provides structured error types for crimereport.
//
// Every failure that reaches a user (CLI output, HTTP response) carries a
// machine-readable [Code] plus a human message, so callers can branch on the
// kind of failure without parsing strings.
//
// # Error Codes
//
//   - INVALID_*: Input validation failures
//   - FETCH_FAILED: the statistics backend could not be read
//   - CAPTURE_FAILED: the chart could not be rasterized
//   - COMPOSITION_FAILED: placement, embedding or export failed after capture
//   - BUSY: a report generation is already in flight
//
// # Usage
//
//	err := errors.Wrap(errors.ErrCodeCapture, cause, "capture chart")
//	if errors.Is(err, errors.ErrCodeCapture) {
//	    // show the PDF failure banner
//	}
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidRegion   Code = "INVALID_REGION"
	ErrCodeInvalidRange    Code = "INVALID_RANGE"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"

	// Data collaborator errors
	ErrCodeFetch Code = "FETCH_FAILED"

	// Report pipeline errors
	ErrCodeCapture     Code = "CAPTURE_FAILED"
	ErrCodeComposition Code = "COMPOSITION_FAILED"
	ErrCodeBusy        Code = "BUSY"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// Only the outermost *Error in the chain is consulted, so a composition
// failure that wraps a lower-level network error reports COMPOSITION_FAILED.
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
