package service

import (
	"errors"
	"fmt"

	"github.com/Kotlang/eventsGo/db"
)

type ErrorKind int

const (
	// KindBackend is anything the store rejected for reasons of its own.
	KindBackend ErrorKind = iota
	KindInvalidIdentifier
	KindNotFound
	KindValidation
	KindForbidden
	KindUnauthenticated
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidIdentifier:
		return "invalid-identifier"
	case KindNotFound:
		return "not-found"
	case KindValidation:
		return "validation"
	case KindForbidden:
		return "forbidden"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "backend"
	}
}

// Error is the error every service operation returns. Message is safe to show
// to the user.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err. Errors that are not *Error are backend errors.
func KindOf(err error) ErrorKind {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return KindBackend
}

// fromStore classifies a repository error.
func fromStore(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNotFound):
		return newError(KindNotFound, message, err)
	case errors.Is(err, db.ErrValidation):
		return newError(KindValidation, missingFieldsMessage, err)
	default:
		return newError(KindBackend, message, err)
	}
}

var errUnauthenticated = newError(KindUnauthenticated, "You have to log in", nil)
