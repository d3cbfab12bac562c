// Package opresult defines the structured error type returned by
// controller operations.
//
// Every failure carries a Kind so callers branch on the category rather
// than parsing message text:
//
//	validation  — one or more field rules were broken; Details holds
//	              every message, never just the first
//	not_found   — the requested id has no matching record
//	bad_request — the request itself is malformed (empty id, empty
//	              search term, unsupported search field)
//
// Errors never cross the controller boundary as panics; validators
// return structured failures and the controller wraps them here.
package opresult

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the error category.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindBadRequest Kind = "bad_request"
)

// Error is the structured operation error.
type Error struct {
	Kind    Kind
	Message string
	Details []string // per-field messages, validation errors only
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Details) > 0 {
		return e.Message + ": " + strings.Join(e.Details, "; ")
	}
	return e.Message
}

// Validation wraps a set of field-rule failure messages.
func Validation(details []string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Details: details}
}

// NotFound reports that no record matches the given id.
func NotFound(id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("student with ID '%s' not found", id)}
}

// BadRequest reports a structurally invalid request.
func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

// As unwraps err into *Error, reporting whether it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return is(err, KindValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return is(err, KindNotFound) }

// IsBadRequest reports whether err is a bad-request error.
func IsBadRequest(err error) bool { return is(err, KindBadRequest) }

func is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
