package errs

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestHTTPErrorBody(t *testing.T) {
	tests := []struct {
		name string
		err  *HTTPError
		want string
	}{
		{
			name: "not found",
			err:  NewNotFoundError("Item not found", true, nil),
			want: `{"detail":"Item not found"}`,
		},
		{
			name: "validation",
			err: NewUnprocessableEntityError("Validation failed", true, []FieldError{
				{Field: "name", Error: "is required"},
			}),
			want: `{"detail":"Validation failed","errors":[{"field":"name","error":"is required"}]}`,
		},
		{
			name: "bad request with action",
			err: NewBadRequestError("Item moved", true, nil, nil, &Action{
				Type: ActionTypeRedirect, Message: "see item", Value: "/items/2",
			}),
			want: `{"detail":"Item moved","action":{"type":"redirect","message":"see item","value":"/items/2"}}`,
		},
		{
			name: "internal",
			err:  NewInternalServerError(),
			want: `{"detail":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.err)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if string(body) != tt.want {
				t.Errorf("body = %s, want %s", body, tt.want)
			}
		})
	}
}

func TestConstructorStatuses(t *testing.T) {
	tests := []struct {
		err  *HTTPError
		want int
		code string
	}{
		{NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{NewForbiddenError("no", false), http.StatusForbidden, "FORBIDDEN"},
		{NewNotFoundError("gone", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{NewUnprocessableEntityError("shape", false, nil), http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		if tt.err.Status != tt.want {
			t.Errorf("%s: Status = %d, want %d", tt.code, tt.err.Status, tt.want)
		}
		if tt.err.Code != tt.code {
			t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
		}
	}
}

func TestWithMessageCopies(t *testing.T) {
	original := NewNotFoundError("Resource not found", false, nil)
	changed := original.WithMessage("Item not found")

	if original.Message != "Resource not found" {
		t.Errorf("original mutated: %q", original.Message)
	}
	if changed.Message != "Item not found" || changed.Status != http.StatusNotFound {
		t.Errorf("WithMessage() = %+v", changed)
	}
}
