// Package errs provides the structured error type shared by the build
// pipeline, classifying failures by kind so callers can distinguish
// expected compiler failures from environment problems.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a build error.
type Kind string

const (
	// KindNotFound marks an expected path or file that is missing
	// (publish artifact absent, source directory not created, ...).
	KindNotFound Kind = "not_found"

	// KindSync marks a failure of the file-mirroring step (permissions,
	// disk full). These indicate environment problems, not document errors.
	KindSync Kind = "sync"

	// KindCompile marks a non-zero exit of the external compiler. This is
	// an expected, reportable outcome and never aborts the rebuild loop.
	KindCompile Kind = "compile"

	// KindEnvironment marks a fault outside the document itself: the
	// compiler binary could not be started at all, or an unexpected I/O
	// failure. Unlike KindCompile these propagate to the caller.
	KindEnvironment Kind = "environment"

	// KindCleanup marks a partial failure while removing the build
	// directory. Cleanup proceeds through all remaining entries.
	KindCleanup Kind = "cleanup"
)

// BuildError is a structured error carrying the failure kind, the pipeline
// stage it occurred in, and the underlying cause.
type BuildError struct {
	Kind    Kind
	Stage   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Stage, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Stage, e.Kind, e.Message)
}

// Unwrap exposes the cause for errors.Is/errors.As chains.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// New creates a BuildError without an underlying cause.
func New(kind Kind, stage, message string) *BuildError {
	return &BuildError{Kind: kind, Stage: stage, Message: message}
}

// Wrap creates a BuildError that wraps an existing error.
func Wrap(err error, kind Kind, stage, message string) *BuildError {
	return &BuildError{Kind: kind, Stage: stage, Message: message, Cause: err}
}

// IsKind reports whether err (or anything it wraps) is a BuildError of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
