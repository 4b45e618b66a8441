package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrTrailingData rejects request bodies holding more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON body")

// JSONSerializer is echo's default serializer with a stricter Deserialize:
// the body must be exactly one JSON value, optionally followed by whitespace.
type JSONSerializer struct {
	echo.DefaultJSONSerializer
}

func (s JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	if err := dec.Decode(i); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Syntax error: offset=%d, error=%v", syntaxErr.Offset, syntaxErr)).SetInternal(err)
		}
		// bindError reads *json.UnmarshalTypeError through echo's wrapping.
		return err
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}
