package handler

import (
	"time"

	"github.com/deppfellow/go-items/internal/middleware"
	"github.com/deppfellow/go-items/internal/server"
	"github.com/deppfellow/go-items/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Handler is the base handler type that holds shared application dependencies.
//
// It is embedded by concrete handlers (ItemHandler, HealthHandler, ...) so
// they can reach config, logger and database through *server.Server.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives a bound and validated
// request payload and returns a response value or an error.
//
// Req is a pointer type, e.g. *model.CreateItemPayload, because Echo's
// Bind needs a pointer to populate fields.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// itemAddressed is implemented by payloads that target one stored item.
type itemAddressed interface {
	ItemID() int64
}

// ResponseHandler writes a successful result.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error

	// GetOperation names the handler type in structured logs.
	GetOperation() string
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

// requestTrace carries the logger and New Relic transaction of one request
// through the phases of handleRequest.
type requestTrace struct {
	logger zerolog.Logger
	txn    *newrelic.Transaction
	start  time.Time
}

func newRequestTrace(c echo.Context, operation string) *requestTrace {
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	return &requestTrace{
		logger: middleware.GetLogger(c).With().
			Str("operation", operation).
			Str("method", c.Request().Method).
			Str("route", route).
			Logger(),
		txn:   txn,
		start: time.Now(),
	}
}

// phase records "<name>.status" and "<name>.duration_ms" on the transaction.
func (rt *requestTrace) phase(name string, err error, d time.Duration) {
	if rt.txn == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
		rt.txn.NoticeError(nrpkgerrors.Wrap(err))
	}
	rt.txn.AddAttribute(name+".status", status)
	rt.txn.AddAttribute(name+".duration_ms", d.Milliseconds())
}

// addItem tags logs and trace with the item the payload addresses.
func (rt *requestTrace) addItem(req any) {
	addressed, ok := req.(itemAddressed)
	if !ok {
		return
	}
	rt.logger = rt.logger.With().Int64("item_id", addressed.ItemID()).Logger()
	if rt.txn != nil {
		rt.txn.AddAttribute("item.id", addressed.ItemID())
	}
}

// handleRequest runs one typed request through bind and validate, execute
// and respond. Failures in either phase are returned untouched so the
// global error handler writes the body.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	rt := newRequestTrace(c, responseHandler.GetOperation())
	rt.logger.Debug().Msg("handling request")

	validationStart := time.Now()
	err := validation.BindAndValidate(c, req)
	validationDuration := time.Since(validationStart)
	rt.phase("validation", err, validationDuration)
	if err != nil {
		rt.logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")
		return err
	}

	rt.addItem(req)

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)
	rt.phase("handler", err, handlerDuration)

	totalDuration := time.Since(rt.start)
	if rt.txn != nil {
		rt.txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	if err != nil {
		rt.logger.Warn().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")
		return err
	}

	rt.logger.Info().
		Dur("validation_duration", validationDuration).
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with validation, error handling, logging,
// metrics and tracing, and returns an echo.HandlerFunc.
//
// newReq is called once per request so concurrent requests never share a
// payload:
//
//	Handle(h.getItem, http.StatusOK,
//		func() *model.GetItemPayload { return &model.GetItemPayload{} })
func Handle[Req validation.Validatable, Res any](
	handler HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newReq(), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}
