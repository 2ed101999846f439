// Package errors provides structured error types for the diagram compiler.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Taxonomy
//
// The compiler distinguishes four failure classes:
//   - INVALID_SYNTAX: the source text is malformed; surfaced with the
//     offending 1-based line number via [SyntaxError]
//   - EMPTY_INPUT: empty or whitespace-only source submitted for generation
//   - LAYOUT_ENGINE_FAILURE: the external layered engine failed; recovered
//     internally by the grid fallback and never surfaced to callers
//   - SERIALIZATION_FAILED: the canvas-extraction collaborator produced no
//     usable ER content
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyInput, "no diagram source provided")
//	if errors.Is(err, errors.ErrCodeEmptyInput) {
//	    // Handle empty input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeLayoutEngine, origErr, "graphviz layout")
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
	ErrCodeSyntax          Code = "INVALID_SYNTAX"
	ErrCodeEmptyInput      Code = "EMPTY_INPUT"
	ErrCodeInvalidStrategy Code = "INVALID_STRATEGY"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Recoverable engine errors
	ErrCodeLayoutEngine Code = "LAYOUT_ENGINE_FAILURE"

	// Serialization errors
	ErrCodeSerialization Code = "SERIALIZATION_FAILED"

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

// Is reports whether err carries the given error code.
// It unwraps the error chain looking for a matching code, checking both
// [Error] and [SyntaxError].
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string for errors from outside this package.
func GetCode(err error) Code {
	var se *SyntaxError
	if errors.As(err, &se) {
		return ErrCodeSyntax
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For structured errors, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Error()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// SyntaxError reports a malformed source line. Line is 1-based so callers
// can highlight the offending line in an editor.
type SyntaxError struct {
	Line    int
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Message)
}

// Syntax creates a SyntaxError for the given 1-based line.
func Syntax(line int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// AsSyntax extracts a SyntaxError from an error chain.
func AsSyntax(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	ok := errors.As(err, &se)
	return se, ok
}
