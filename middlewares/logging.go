package middlewares

import (
	"log/slog"
	"time"

	"github.com/plinthhq/plinth/internal"
)

// Logging returns middleware that logs one line per request with method,
// path, status, size, and duration. Errors returned by downstream handlers
// are logged at error level and passed through untouched so the error
// layers still see them.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", c.ResponseWriter().Status()),
				slog.Int64("size", c.ResponseWriter().Size()),
				slog.Duration("duration", elapsed),
			}

			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
				c.LogError("request failed", attrs...)
				return err
			}

			c.LogInfo("request completed", attrs...)
			return nil
		}
	}
}
