// Package errors provides structured error types for the burrow client.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the client core and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Locator or configuration validation failures
//   - RESOLVE_FAILED, CONNECTION_REFUSED, TIMEOUT, TLS_FAILURE: transport
//     failures, distinguished so a caller can decide how to recover
//   - SERVER_ERROR: an error reported by the remote Gopher server itself
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidURL, "invalid gopher url: %s", raw)
//	if errors.Is(err, errors.ErrCodeInvalidURL) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTimeout, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Locator and configuration validation errors. These are raised
	// synchronously, before any network activity.
	ErrCodeInvalidURL    Code = "INVALID_URL"
	ErrCodeInvalidPort   Code = "INVALID_PORT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Transport errors. Each subtype is distinct so the caller can decide
	// whether a retry with a different IP version makes sense.
	ErrCodeResolveFailed     Code = "RESOLVE_FAILED"
	ErrCodeConnectionRefused Code = "CONNECTION_REFUSED"
	ErrCodeTimeout           Code = "TIMEOUT"
	ErrCodeTLSFailure        Code = "TLS_FAILURE"
	ErrCodeNetwork           Code = "NETWORK_ERROR"

	// Server-reported errors (an error-marker item in a listing).
	ErrCodeServerError Code = "SERVER_ERROR"

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

// IsTransport reports whether err carries one of the transport error codes.
// Validation errors and server-reported errors are not transport errors.
func IsTransport(err error) bool {
	switch GetCode(err) {
	case ErrCodeResolveFailed, ErrCodeConnectionRefused, ErrCodeTimeout,
		ErrCodeTLSFailure, ErrCodeNetwork:
		return true
	}
	return false
}
