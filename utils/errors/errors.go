// Copyright 2026 NetApp, Inc. All Rights Reserved.

package errors

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ///////////////////////////////////////////////////////////////////////////
// Wrappers for standard library errors package
// ///////////////////////////////////////////////////////////////////////////

func New(message string) error {
	return errors.New(message)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join combines errors the way multierr does, so the result can be split again with Errors.
func Join(errs ...error) error {
	return multierr.Combine(errs...)
}

// Errors returns the individual errors of a joined error.
func Errors(err error) []error {
	return multierr.Errors(err)
}

func format(message string, a ...any) string {
	if len(a) == 0 {
		return message
	}
	return fmt.Sprintf(message, a...)
}

func join(message string, inner error) string {
	if inner == nil || inner.Error() == "" {
		return message
	} else if message == "" {
		return inner.Error()
	}
	return fmt.Sprintf("%v; %v", message, inner.Error())
}

// ///////////////////////////////////////////////////////////////////////////
// preconditionError
// ///////////////////////////////////////////////////////////////////////////

type preconditionError struct {
	inner   error
	message string
}

func (e *preconditionError) Error() string { return join(e.message, e.inner) }

func (e *preconditionError) Unwrap() error { return e.inner }

// PreconditionError is returned when the run cannot start safely. No mutation has happened.
func PreconditionError(message string, a ...any) error {
	return &preconditionError{message: format(message, a...)}
}

func WrapWithPreconditionError(err error, message string, a ...any) error {
	return &preconditionError{inner: err, message: format(message, a...)}
}

func IsPreconditionError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *preconditionError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// transientRemoteError
// ///////////////////////////////////////////////////////////////////////////

type transientRemoteError struct {
	inner   error
	message string
}

func (e *transientRemoteError) Error() string { return join(e.message, e.inner) }

func (e *transientRemoteError) Unwrap() error { return e.inner }

// TransientRemoteError marks timeouts and transport faults that are worth retrying.
func TransientRemoteError(message string, a ...any) error {
	return &transientRemoteError{message: format(message, a...)}
}

func WrapWithTransientRemoteError(err error, message string, a ...any) error {
	return &transientRemoteError{inner: err, message: format(message, a...)}
}

func IsTransientRemoteError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *transientRemoteError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// mutationError
// ///////////////////////////////////////////////////////////////////////////

type mutationError struct {
	inner    error
	phase    string
	resource string
	message  string
}

func (e *mutationError) Error() string {
	return join(fmt.Sprintf("[%s] %s: %s", e.phase, e.resource, e.message), e.inner)
}

func (e *mutationError) Unwrap() error { return e.inner }

func (e *mutationError) Phase() string { return e.phase }

func (e *mutationError) Resource() string { return e.resource }

// MutationError records a failed change against one resource during a phase.
func MutationError(phase, resource, message string, a ...any) error {
	return &mutationError{phase: phase, resource: resource, message: format(message, a...)}
}

func WrapWithMutationError(err error, phase, resource, message string, a ...any) error {
	return &mutationError{inner: err, phase: phase, resource: resource, message: format(message, a...)}
}

func IsMutationError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *mutationError
	return errors.As(err, &errPtr)
}

// MutationErrorDetails returns the phase and resource of a mutation error, if err is one.
func MutationErrorDetails(err error) (phase, resource string, ok bool) {
	var errPtr *mutationError
	if errors.As(err, &errPtr) {
		return errPtr.phase, errPtr.resource, true
	}
	return "", "", false
}

// ///////////////////////////////////////////////////////////////////////////
// notFoundError
// ///////////////////////////////////////////////////////////////////////////

type notFoundError struct {
	inner   error
	message string
}

func (e *notFoundError) Error() string { return join(e.message, e.inner) }

func (e *notFoundError) Unwrap() error { return e.inner }

func NotFoundError(message string, a ...any) error {
	return &notFoundError{message: format(message, a...)}
}

func WrapWithNotFoundError(err error, message string, a ...any) error {
	return &notFoundError{inner: err, message: format(message, a...)}
}

func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *notFoundError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// alreadyExistsError
// ///////////////////////////////////////////////////////////////////////////

type alreadyExistsError struct {
	inner   error
	message string
}

func (e *alreadyExistsError) Error() string { return join(e.message, e.inner) }

func (e *alreadyExistsError) Unwrap() error { return e.inner }

func AlreadyExistsError(message string, a ...any) error {
	return &alreadyExistsError{message: format(message, a...)}
}

func WrapWithAlreadyExistsError(err error, message string, a ...any) error {
	return &alreadyExistsError{inner: err, message: format(message, a...)}
}

func IsAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *alreadyExistsError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// unsupportedError
// ///////////////////////////////////////////////////////////////////////////

type unsupportedError struct {
	message string
}

func (e *unsupportedError) Error() string { return e.message }

func UnsupportedError(message string, a ...any) error {
	return &unsupportedError{message: format(message, a...)}
}

func IsUnsupportedError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *unsupportedError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// cancelledError
// ///////////////////////////////////////////////////////////////////////////

type cancelledError struct {
	message string
}

func (e *cancelledError) Error() string { return e.message }

// CancelledError is returned when an operator declines to continue.
func CancelledError(message string, a ...any) error {
	return &cancelledError{message: format(message, a...)}
}

func IsCancelledError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *cancelledError
	return errors.As(err, &errPtr)
}
