// Package errors provides error types and utilities for opticx.
// It extends the standard errors package with wrapping helpers and the
// sentinel failures the capture backends report.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios
var (
	// ErrTimeout indicates a capture exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrBackendUnavailable indicates a backend binary or session could not be acquired
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrProbeRefused indicates a target refused the preflight connection
	ErrProbeRefused = errors.New("connection refused by target")

	// ErrRenderFailed indicates the renderer could not produce an image
	ErrRenderFailed = errors.New("render failed")

	// ErrOutputWrite indicates the captured image could not be persisted
	ErrOutputWrite = errors.New("output write failed")

	// ErrInvalidInput indicates invalid input was provided
	ErrInvalidInput = errors.New("invalid input")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

// Error implements the error interface
func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Unwrap returns the underlying error
func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   msg,
		cause: err,
	}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is from the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
// This is a convenience wrapper around errors.As from the standard library.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New creates a new error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsTimeout reports whether the error is a timeout error
func IsTimeout(err error) bool {
	return Is(err, ErrTimeout)
}

// IsBackendUnavailable reports whether the error is a backend availability error
func IsBackendUnavailable(err error) bool {
	return Is(err, ErrBackendUnavailable)
}

// IsOutputWrite reports whether the error is an output persistence error
func IsOutputWrite(err error) bool {
	return Is(err, ErrOutputWrite)
}
