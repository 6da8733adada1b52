// Package errors provides structured error types for arbor.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Structural errors (malformed or unexpected input trees) and request
// errors (unresolvable nodes, no-op requests) are separate categories.
// None of them are transient and none are retried; only NETWORK_ERROR
// may be wrapped as retryable by the client layer.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNodeNotFound, "node %d not in skeleton %d", id, skid)
//	if errors.Is(err, errors.ErrCodeNodeNotFound) {
//	    // Handle missing node
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch skeleton %d", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Guard errors
	ErrCodeMultipleNeurons Code = "MULTIPLE_NEURONS" // operation requires exactly one neuron
	ErrCodeNoOp            Code = "NO_OP"            // request is already satisfied

	// Node resolution errors
	ErrCodeNodeNotFound   Code = "NODE_NOT_FOUND"   // node identifier not present
	ErrCodeTagNotResolved Code = "TAG_NOT_RESOLVED" // tag absent or matching more than one node

	// Structural errors
	ErrCodeLeafCut        Code = "LEAF_CUT"        // attempt to cut at a node with no subtree
	ErrCodeMalformedTree  Code = "MALFORMED_TREE"  // no root, multiple roots, dangling parent, or cycle
	ErrCodeIncompleteTree Code = "INCOMPLETE_TREE" // bottom-up wavefront stalled before covering the tree

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Client-side errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"
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
