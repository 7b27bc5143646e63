package middleware

import (
	"time"

	"github.com/crossmarket/crossmarket/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs HTTP requests through the structured logger.
func RequestLogging(l *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)

			if l != nil {
				l.Info("http request",
					logger.String("method", req.Method),
					logger.String("uri", req.RequestURI),
					logger.Int("status", c.Response().Status),
					logger.Duration("duration_ms", time.Since(start)),
				)
			}

			return err
		}
	}
}
