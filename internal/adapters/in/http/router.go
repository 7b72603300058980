package http

import (
	"log/slog"

	"helpdispatch/internal/generated/servers"
	"helpdispatch/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the echo instance serving the public API, /health and
// /metrics. API routes come from the generated servers package; they require
// UserIDHeader and are validated against the embedded OpenAPI document.
func NewRouter(
	server *Server,
	collectors *metrics.Collectors,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(RequestMetrics(collectors))

	e.GET("/health", server.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	servers.RegisterHandlers(apiRouter{Echo: e, middleware: []echo.MiddlewareFunc{RequireUser, validator}}, server)

	return e, nil
}

// apiRouter registers the generated routes with the API middleware attached,
// leaving /health and /metrics open.
type apiRouter struct {
	*echo.Echo
	middleware []echo.MiddlewareFunc
}

var _ servers.EchoRouter = apiRouter{}

func (r apiRouter) with(m []echo.MiddlewareFunc) []echo.MiddlewareFunc {
	return append(append([]echo.MiddlewareFunc{}, r.middleware...), m...)
}

func (r apiRouter) CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.Echo.CONNECT(path, h, r.with(m)...)
}

func (r apiRouter) DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.Echo.DELETE(path, h, r.with(m)...)
}

func (r apiRouter) GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.Echo.GET(path, h, r.with(m)...)
}

func (r apiRouter) HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.Echo.HEAD(path, h, r.with(m)...)
}

func (r apiRouter) OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.Echo.OPTIONS(path, h, r.with(m)...)
}

func (r apiRouter) PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.Echo.PATCH(path, h, r.with(m)...)
}

func (r apiRouter) POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.Echo.POST(path, h, r.with(m)...)
}

func (r apiRouter) PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.Echo.PUT(path, h, r.with(m)...)
}

func (r apiRouter) TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.Echo.TRACE(path, h, r.with(m)...)
}
