package errs

import (
	"net/http"
)

// newHTTPError fills Code from the status text: 404 -> "NOT_FOUND".
func newHTTPError(status int, message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message:  message,
		Status:   status,
		Override: override,
	}
}

// withCode swaps in a domain code such as "ITEM_REQUIRED" when one is given.
func (e *HTTPError) withCode(code *string) *HTTPError {
	if code != nil {
		e.Code = *code
	}
	return e
}

func NewForbiddenError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusForbidden, message, override)
}

// NewBadRequestError builds a 400. code replaces "BAD_REQUEST" when non-nil;
// fieldErrors and action are optional.
func NewBadRequestError(message string, override bool, code *string, fieldErrors []FieldError, action *Action) *HTTPError {
	e := newHTTPError(http.StatusBadRequest, message, override).withCode(code)
	e.Errors = fieldErrors
	e.Action = action
	return e
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, override).withCode(code)
}

// NewUnprocessableEntityError is returned for request bodies and path
// parameters that do not have the expected shape.
func NewUnprocessableEntityError(message string, override bool, fieldErrors []FieldError) *HTTPError {
	e := newHTTPError(http.StatusUnprocessableEntity, message, override)
	e.Errors = fieldErrors
	return e
}

func NewTooManyRequestsError(message string) *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, message, true)
}

// NewInternalServerError never carries the underlying error's text.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false)
}
