// Package errors provides structured error types for the bandslicer application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, HTTP API and library callers
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into two groups with different propagation rules:
//   - Structural input errors (DEGENERATE_INPUT, INVALID_*) are fatal: the
//     run is aborted and no partial result is returned.
//   - Lookup errors against a computed result (INDEX_OUT_OF_RANGE) are local
//     and recoverable; the caller can retry with a valid index.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDegenerateInput, "vertex 0 has no neighbors")
//	if errors.Is(err, errors.ErrCodeDegenerateInput) {
//	    // Handle degenerate mesh
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidDirection Code = "INVALID_DIRECTION"
	ErrCodeDegenerateInput  Code = "DEGENERATE_INPUT"

	// Lookup errors
	ErrCodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Remote mesh downloads that kept failing
	ErrCodeNetwork Code = "NETWORK_ERROR"

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

// IsFatal reports whether err aborts a slicing run. Lookup errors against
// an already computed result are recoverable; everything else is fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return GetCode(err) != ErrCodeIndexOutOfRange
}
