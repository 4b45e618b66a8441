package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/go-items/internal/server"
)

// TracingMiddleware wires requests into New Relic. Both middlewares are
// pass-throughs when no application is configured.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware starts one transaction per request (nrecho).
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing labels the transaction with the route template and client,
// and notices returned errors with their stack. Runs after RequestID.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			for key, value := range map[string]string{
				"service.name":    tm.server.Config.Observability.ServiceName,
				"http.route":      c.Path(),
				"http.real_ip":    c.RealIP(),
				"http.user_agent": c.Request().UserAgent(),
				"request.id":      GetRequestID(c),
			} {
				if value != "" {
					txn.AddAttribute(key, value)
				}
			}

			err := next(c)
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				txn.AddAttribute("http.status_code", errorStatus(err))
			} else {
				txn.AddAttribute("http.status_code", c.Response().Status)
			}
			return err
		}
	}
}
