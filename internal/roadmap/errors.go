package roadmap

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a compile failure. Codes are strings so they serialize
// naturally into API error bodies.
type ErrorCode string

const (
	// CodeMissingSource indicates a source document is absent or empty. It is a
	// configuration problem and must not be retried until the document exists.
	CodeMissingSource ErrorCode = "INVALID_CONFIGURATION"

	// CodeSourceUnavailable indicates a source document could not be fetched.
	CodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"

	// CodeInternal indicates an unexpected failure while compiling.
	CodeInternal ErrorCode = "INTERNAL_ERROR"
)

// ErrMissingSource is matched by errors.Is for every CodeMissingSource error.
var ErrMissingSource = errors.New("source document missing")

// Error is a coded compile failure.
type Error struct {
	Code ErrorCode
	Op   string // e.g. "load versioning", "parse"
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == ErrMissingSource && e.Code == CodeMissingSource
}

// Retryable reports whether repeating the operation could succeed without
// changing the inputs.
func (e *Error) Retryable() bool {
	return e.Code == CodeSourceUnavailable
}

// MissingSource returns the error for an absent document.
func MissingSource(doc string) error {
	return &Error{Code: CodeMissingSource, Op: "load " + doc, Err: fmt.Errorf("%s document is empty", doc)}
}

// CodeOf returns the code of err, or CodeInternal for uncoded errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
