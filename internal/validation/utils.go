package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/deppfellow/go-items/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Validatable is a request payload that checks itself, usually by running
// validator.Struct on its own tags. Rules that tags cannot express return
// CustomValidationErrors instead.
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate fills payload (a struct pointer) from the path params and
// JSON body, then validates it. Any failure is a 422 *errs.HTTPError, except
// a 415 for a non-JSON body.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(c, err)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewUnprocessableEntityError(msg, true, fieldErrors)
	}

	return nil
}

// bindError turns an echo binding failure into a 422.
//
//   - a path parameter that is not an integer: field error naming the parameter
//   - a JSON value of the wrong type: field error naming the JSON field
//   - malformed JSON: echo's syntax message
//   - 415 (missing or wrong Content-Type): passed through unchanged
func bindError(c echo.Context, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return errs.NewUnprocessableEntityError("Validation failed", true, []errs.FieldError{
			{Field: paramNameFor(c, numErr.Num), Error: "must be an integer"},
		})
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return errs.NewUnprocessableEntityError("Validation failed", true, []errs.FieldError{
			{Field: typeErr.Field, Error: "must be a " + typeErr.Type.String()},
		})
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusUnsupportedMediaType {
			return echoErr
		}
		message := http.StatusText(http.StatusUnprocessableEntity)
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		}
		return errs.NewUnprocessableEntityError(message, false, nil)
	}

	return errs.NewUnprocessableEntityError(err.Error(), false, nil)
}

// paramNameFor finds the path parameter holding value.
func paramNameFor(c echo.Context, value string) string {
	for _, name := range c.ParamNames() {
		if c.Param(name) == value {
			return name
		}
	}
	return "path"
}

// validateStruct runs v.Validate and, on failure, returns the field errors.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	err := v.Validate()
	if err == nil {
		return "", nil
	}

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		fieldErrors := make([]errs.FieldError, 0, len(custom))
		for _, ce := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: ce.Field, Error: ce.Message})
		}
		return "Validation failed", fieldErrors
	}

	var tagged validator.ValidationErrors
	if !errors.As(err, &tagged) {
		return "Validation failed", []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	fieldErrors := make([]errs.FieldError, 0, len(tagged))
	for _, fe := range tagged {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: strings.ToLower(fe.Field()),
			Error: tagMessage(fe),
		})
	}
	return "Validation failed", fieldErrors
}

// tagMessage renders one failed validator tag as a client message.
func tagMessage(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s%s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must not exceed %s%s", fe.Param(), unit)
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	}

	if fe.Param() != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return "failed " + fe.Tag()
}

// IsValidUUID reports whether s is a hyphenated UUID
// (xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx). Client-supplied X-Request-ID
// values must pass it.
func IsValidUUID(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
}
