package middleware

import (
	"net/http"

	"github.com/deppfellow/go-items/internal/errs"
	"github.com/deppfellow/go-items/internal/server"
	"github.com/deppfellow/go-items/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
)

// GlobalMiddlewares groups "global" middleware and the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured by Server.CORSAllowedOrigins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one "API" line per request. Its level follows the
// final status: error from 500, warn from 400, info otherwise.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			status := v.Status
			// Returned errors are written by the error handler after this
			// runs; see https://github.com/labstack/echo/issues/2310
			if v.Error != nil {
				status = errorStatus(v.Error)
			}

			logger := GetLogger(c)
			e := logger.Info()
			if status >= http.StatusInternalServerError {
				e = logger.Error().Err(v.Error)
			} else if status >= http.StatusBadRequest {
				e = logger.Warn()
			}

			e.Int("status", status).
				Dur("latency", v.Latency).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// errorStatus is the status GlobalErrorHandler will answer err with.
func errorStatus(err error) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// Recover turns handler panics into errors for the global error handler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// RemoveTrailingSlash rewrites "/items/1/" to "/items/1" before routing.
// It must be registered with Echo.Pre.
func (global *GlobalMiddlewares) RemoveTrailingSlash() echo.MiddlewareFunc {
	return middleware.RemoveTrailingSlash()
}

// Secure adds the standard security headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// asHTTPError converts any handler error into the response body.
func asHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) {
		// Storage errors, panics recovered by Recover, anything else.
		if errors.As(sqlerr.HandleError(err), &httpErr) {
			return httpErr
		}
		return errs.NewInternalServerError()
	}

	if echoErr.Code == http.StatusNotFound {
		return errs.NewNotFoundError("Route not found", false, nil)
	}

	statusText := http.StatusText(echoErr.Code)
	message, _ := echoErr.Message.(string)
	if message == "" {
		message = statusText
	}
	return &errs.HTTPError{
		Code:    errs.MakeUpperCaseWithUnderscores(statusText),
		Message: message,
		Status:  echoErr.Code,
	}
}

// GlobalErrorHandler is the echo HTTPErrorHandler. Every error leaves as
//
//	{"detail": "Item not found"}
//
// and the log line keeps the unconverted error.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	response := asHTTPError(err)
	// Server-side messages reach clients only when their author opted in.
	if response.Status >= http.StatusInternalServerError && !response.Override {
		response = response.WithMessage(http.StatusText(response.Status))
	}

	logger := GetLogger(c)
	e := logger.Warn()
	if response.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	}
	e.Err(err).
		Int("status", response.Status).
		Str("error_code", response.Code).
		Msg(response.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(response.Status)
		return
	}
	_ = c.JSON(response.Status, response)
}
