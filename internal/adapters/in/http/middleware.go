package http

import (
	"log/slog"
	"net/http"
	"time"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/generated/servers"
	"helpdispatch/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// UserIDHeader carries the authenticated caller, set by the gateway in front
// of this service.
const UserIDHeader = "X-User-ID"

// RequireUser answers 401 unless UserIDHeader holds a valid, non-nil UUID.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := kernel.UUIDFromString(c.Request().Header.Get(UserIDHeader)); err != nil {
			return c.JSON(http.StatusUnauthorized, servers.Error{Error: "Unauthorized"})
		}
		return next(c)
	}
}

// RequestMetrics records count and latency per route template.
func RequestMetrics(collectors *metrics.Collectors) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			collectors.ObserveHTTP(path, c.Request().Method, c.Response().Status, time.Since(start).Seconds())
			return nil
		}
	}
}

// RequestLogger logs one line per request through logger.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.RequestID != "" {
				attrs = append(attrs, slog.String("request_id", v.RequestID))
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
