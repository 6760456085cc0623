// Package errors defines the coded errors returned by every polymap stage.
//
// Each failure carries a [Code] so callers can branch on the kind of failure
// without matching message text:
//
//   - INVALID_INPUT, INVALID_CONFIG, INVALID_FORMAT, INVALID_PATH: rejected arguments
//   - GRAPH_NOT_BUILT: a stage ran before the graph existed
//   - EDGE_NOT_FOUND: two adjacent corners without a canonical edge
//   - TRAVERSAL_BOUND_EXCEEDED: a river walk hit its step limit ([BoundExceededError])
//   - INTERNAL_ERROR: a broken graph invariant
//
// Stage boundaries add context with fmt.Errorf and %w; [Is] and [GetCode]
// see through that wrapping.
//
//	g, err := polygraph.Generate(w, h, n, 2, src)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    return fmt.Errorf("bad map size: %w", err)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error.
type Code string

const (
	// Rejected arguments
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Stage ordering and lookup errors
	ErrCodeGraphNotBuilt Code = "GRAPH_NOT_BUILT"
	ErrCodeEdgeNotFound  Code = "EDGE_NOT_FOUND"

	// Bounded traversal errors
	ErrCodeTraversalBoundExceeded Code = "TRAVERSAL_BOUND_EXCEEDED"

	// Invariant violations and missing capabilities
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a message and an optional underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap returns an Error with cause attached.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the first *Error or *BoundExceededError in err's chain
// carries code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	var b *BoundExceededError
	if errors.As(err, &b) {
		return b.Code() == code
	}
	return false
}

// GetCode returns the code of the first coded error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var b *BoundExceededError
	if errors.As(err, &b) {
		return b.Code()
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for any other error.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// BoundExceededError reports a graph walk that hit its step limit.
// It is recoverable: callers abandon the walk and continue.
type BoundExceededError struct {
	Steps int    // Steps taken before giving up
	Walk  string // What was being walked (e.g. "river")
}

// Error implements the error interface.
func (e *BoundExceededError) Error() string {
	if e.Walk != "" {
		return fmt.Sprintf("%s abandoned after %d steps", e.Walk, e.Steps)
	}
	return fmt.Sprintf("walk abandoned after %d steps", e.Steps)
}

// Code is always ErrCodeTraversalBoundExceeded.
func (e *BoundExceededError) Code() Code {
	return ErrCodeTraversalBoundExceeded
}
