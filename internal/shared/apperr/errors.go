// Package apperr defines the error taxonomy shared by the Users and Orders
// services: the kind of failure a command, consumer, or background worker
// produced, independent of how it is ultimately surfaced (HTTP status,
// retry decision, log line).
package apperr

import "fmt"

type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindCancelled  Kind = "cancelled"
	KindTransient  Kind = "transient"
	KindPermanent  Kind = "permanent"
	KindInternal   Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func NewValidationError(message string) *Error {
	return New(KindValidation, message, nil)
}

func NewConflictError(message string) *Error {
	return New(KindConflict, message, nil)
}

func NewNotFoundError(message string) *Error {
	return New(KindNotFound, message, nil)
}

func NewCancelledError(cause error) *Error {
	return New(KindCancelled, "request cancelled", cause)
}

func NewTransientError(message string, cause error) *Error {
	return New(KindTransient, message, cause)
}

func NewPermanentError(message string, cause error) *Error {
	return New(KindPermanent, message, cause)
}

func NewInternalError(message string, cause error) *Error {
	return New(KindInternal, message, cause)
}

// KindOf extracts the Kind from err, defaulting to KindInternal when err is
// not (or does not wrap) an *Error — an unexpected error is, by definition,
// one the taxonomy did not anticipate.
func KindOf(err error) Kind {
	var appErr *Error
	if ok := asError(err, &appErr); ok {
		return appErr.Kind
	}

	return KindInternal
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}

		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}

		err = unwrapper.Unwrap()
	}

	return false
}
