package pokeapi

import (
	"errors"

	"github.com/matzehuels/pokespeare/pkg/integrations"
)

var errMissingField = errors.New("missing or mistyped field")

// Error is the failure type returned by [Client]. Kind is one of
// [integrations.KindNotFound], [integrations.KindInternal] or
// [integrations.KindBadRequest]; Message is only meaningful for BadRequest.
type Error struct {
	Kind    integrations.Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := "pokeapi: " + e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// BadRequest reports invalid caller input. The client does not validate
// names today, so nothing in this package constructs it.
func BadRequest(message string) *Error {
	return &Error{Kind: integrations.KindBadRequest, Message: message}
}

func wrap(kind integrations.Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func internal(err error) *Error {
	return wrap(integrations.KindInternal, err)
}
