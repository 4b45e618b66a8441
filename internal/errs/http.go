package errs

import "strings"

// FieldError points at one rejected input: {"field":"name","error":"is required"}.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ActionType string

// ActionTypeRedirect asks the client to navigate to Action.Value.
const ActionTypeRedirect ActionType = "redirect"

// Action is an optional next step for the client.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the main custom error type for API responses.
//
// It is serialized directly as the response body. Clients only see
// Message (as "detail") plus the optional field errors and action:
//
//	{"detail": "Item not found"}
//
// Code, Status and Override drive the response and the logs but are not
// part of the body.
type HTTPError struct {
	Code    string `json:"-"`
	Message string `json:"detail"`
	Status  int    `json:"-"`
	// Override marks Message as safe to show for a 5xx; otherwise the
	// error handler answers with the status text.
	Override bool `json:"-"`

	Errors []FieldError `json:"errors,omitempty"`
	Action *Action      `json:"action,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError regardless of status or code.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e carrying message.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	c := *e
	c.Message = message
	return &c
}

// MakeUpperCaseWithUnderscores turns status text into a code: "Bad Request" -> "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
