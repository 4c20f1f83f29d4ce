package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a stable, machine-readable error category surfaced to API clients.
type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindAlreadyExists    Kind = "ALREADY_EXISTS"
	KindSelfReference    Kind = "SELF_REFERENCE"
	KindPolicyDenied     Kind = "POLICY_DENIED"
	KindNotOwner         Kind = "NOT_OWNER"
	KindForbidden        Kind = "FORBIDDEN"
	KindInvalidReference Kind = "INVALID_REFERENCE"
	KindUnauthenticated  Kind = "UNAUTHENTICATED"
	KindValidation       Kind = "VALIDATION_ERROR"
	KindInternal         Kind = "INTERNAL_ERROR"
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

func Newf(kind Kind, format string, args ...interface{}) *AppError {
	return New(kind, fmt.Sprintf(format, args...))
}

func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Internal wraps a store or transport failure that callers cannot act on.
func Internal(err error, message string) *AppError {
	return Wrap(err, KindInternal, message)
}

// KindOf reports the kind of the first AppError in err's chain.
// Errors that carry no kind are internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}
