// Package errors provides the uniform API error returned by the service.
//
// Both upstream clients have their own error taxonomy. This package maps
// each of them, exactly once and at the boundary, onto an [Error] with a
// stable machine-readable code, an HTTP status, and a human message:
//
//	err := errors.From(clientErr)
//	w.WriteHeader(err.Status)
//	json.NewEncoder(w).Encode(err)  // {"code": "PE_NOT_FOUND", "message": "pokemon not found"}
//
// The mapping is total: every client error variant maps to exactly one
// Error, and anything outside both taxonomies maps to an internal error.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/matzehuels/pokespeare/pkg/integrations"
	"github.com/matzehuels/pokespeare/pkg/integrations/funtranslations"
	"github.com/matzehuels/pokespeare/pkg/integrations/pokeapi"
)

// Code represents a machine-readable error code.
type Code string

// Error codes exposed by the API.
const (
	CodeNotFound         Code = "PE_NOT_FOUND"
	CodeInternal         Code = "PE_INTERNAL"
	CodeBadRequest       Code = "PE_BAD_REQUEST"
	CodeMethodNotAllowed Code = "PE_METHOD_NOT_ALLOWED"
)

const (
	msgPokemonNotFound = "pokemon not found"
	msgNotFound        = "not found"
	msgInternal        = "internal error"
)

// Error is a structured API error. Only Code and Message are serialized;
// Status and Cause stay server-side.
type Error struct {
	Status  int    `json:"-"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given status, code and message.
func New(status int, code Code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// NotFound returns a 404 PE_NOT_FOUND error.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, CodeNotFound, message)
}

// Internal returns a 500 PE_INTERNAL error wrapping cause.
func Internal(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: msgInternal, Cause: cause}
}

// BadRequest returns a 400 PE_BAD_REQUEST error.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, CodeBadRequest, message)
}

// MethodNotAllowed returns a 405 error for unsupported methods on a route.
func MethodNotAllowed() *Error {
	return New(http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
}

// FromSpecies maps a species client error.
func FromSpecies(err *pokeapi.Error) *Error {
	var out *Error
	switch err.Kind {
	case integrations.KindNotFound:
		out = NotFound(msgPokemonNotFound)
	case integrations.KindBadRequest:
		out = BadRequest(err.Message)
	default:
		out = Internal(nil)
	}
	out.Cause = err
	return out
}

// FromTranslation maps a translation client error.
func FromTranslation(err *funtranslations.Error) *Error {
	var out *Error
	switch err.Kind {
	case integrations.KindNotFound:
		out = NotFound(msgNotFound)
	case integrations.KindBadRequest:
		out = BadRequest(err.Message)
	default:
		out = Internal(nil)
	}
	out.Cause = err
	return out
}

// From maps any error returned by the service into an API error.
// It returns nil for a nil err. An *Error passes through unchanged; errors
// from neither upstream client become internal errors.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var (
		apiErr     *Error
		speciesErr *pokeapi.Error
		transErr   *funtranslations.Error
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &speciesErr):
		return FromSpecies(speciesErr)
	case errors.As(err, &transErr):
		return FromTranslation(transErr)
	default:
		return Internal(err)
	}
}
