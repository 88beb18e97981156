// Package errs defines the errors the posts API reports to clients.
//
// Every failure a handler can see is one of three kinds: the request body
// was invalid, the post does not exist, or the store failed. Each kind maps
// to one HTTP status and carries the client-facing message; store failures
// also keep the underlying cause for server-side logging.
package errs

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies an Error.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

const (
	MsgMissingFields = "Please provide title and contents for the post"
	MsgPostNotFound  = "The post with the specified ID does not exist"
)

// Error is returned by the service layer for every failed operation.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation reports a request body without a title or contents.
func Validation() *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: MsgMissingFields,
	}
}

// NotFound reports a post id with no matching post.
func NotFound() *Error {
	return &Error{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: MsgPostNotFound,
	}
}

// Persistence reports a store failure. message is what the client sees;
// cause is recorded with a stack trace for the logs.
func Persistence(message string, cause error) *Error {
	if cause == nil {
		cause = errors.New(message)
	} else if _, ok := cause.(stackTracer); !ok {
		cause = errors.WithStack(cause)
	}
	return &Error{
		Kind:    KindPersistence,
		Status:  http.StatusInternalServerError,
		Message: message,
		Cause:   cause,
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Stack renders the stack recorded on err's cause, or "" if there is none.
func Stack(err error) string {
	var tracer stackTracer
	if !errors.As(err, &tracer) {
		return ""
	}
	return fmt.Sprintf("%+v", tracer.StackTrace())
}
