// Package errors provides error handling for Specular.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrConverterBusy) {
//	    // handle concurrent run attempt
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Common sentinel errors for use across Specular.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrConverterBusy indicates a conversion run was requested while another
	// run on the same converter instance had not yet completed
	ErrConverterBusy = New("converter busy")

	// ErrNoProgram indicates the frontend could not produce a type-checking
	// session for the requested inputs
	ErrNoProgram = New("no program")

	// ErrStrategyConflict indicates a strategy name collision in the registry
	ErrStrategyConflict = New("strategy already registered")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")
)

// IsConverterBusyError checks if an error is or wraps ErrConverterBusy
func IsConverterBusyError(err error) bool {
	return err != nil && Is(err, ErrConverterBusy)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}
