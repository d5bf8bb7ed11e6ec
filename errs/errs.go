// Package errs defines the two error kinds the catalog core raises and the
// helpers callers use to classify them. Store-level failures are never
// translated here; they propagate to the caller as-is.
package errs

import (
	"errors"
	"net/http"
)

// Kind tags an Error with its failure class.
type Kind string

const (
	// KindNotFound: an entity referenced by id does not exist in the store.
	KindNotFound Kind = "NOT_FOUND"
	// KindPreconditionFailed: both endpoints exist but the relation edge
	// does not, or a domain invariant blocks the requested mutation.
	KindPreconditionFailed Kind = "PRECONDITION_FAILED"
)

// Error is a classified domain error with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error kind to the status the REST boundary responds
// with: 404 for missing endpoints, 412 for missing edges and broken
// invariants.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindPreconditionFailed:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// NotFound creates a NOT_FOUND error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// PreconditionFailed creates a PRECONDITION_FAILED error.
func PreconditionFailed(message string) *Error {
	return &Error{Kind: KindPreconditionFailed, Message: message}
}

// As extracts an *Error from an error chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	e := As(err)
	return e != nil && e.Kind == kind
}

// IsNotFound reports whether err is a NOT_FOUND error.
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}

// IsPreconditionFailed reports whether err is a PRECONDITION_FAILED error.
func IsPreconditionFailed(err error) bool {
	return IsKind(err, KindPreconditionFailed)
}
