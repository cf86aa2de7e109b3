package funtranslations

import "github.com/matzehuels/pokespeare/pkg/integrations"

// Error is the failure type returned by [Client]. Message is only
// meaningful for [integrations.KindBadRequest].
type Error struct {
	Kind    integrations.Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := "funtranslations: " + e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// BadRequest reports invalid caller input. Reserved; the client performs
// no validation today.
func BadRequest(message string) *Error {
	return &Error{Kind: integrations.KindBadRequest, Message: message}
}

func wrap(kind integrations.Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func internal(err error) *Error {
	return wrap(integrations.KindInternal, err)
}
