// Package logger provides structured logging with context extraction and
// optional Sentry integration.
//
// It builds on log/slog: a decorator wraps any slog.Handler and injects
// attributes pulled from the context on every log call, so request-scoped
// values like request IDs show up in every entry without boilerplate.
//
// # Basic Usage
//
//	requestIDExtractor := func(ctx context.Context) (slog.Attr, bool) {
//		if reqID, ok := ctx.Value(requestIDKey{}).(string); ok && reqID != "" {
//			return slog.String("request_id", reqID), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(requestIDExtractor)
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//
// # Sentry
//
// NewWithSentry routes logs to stdout and Sentry simultaneously. Errors
// create Sentry Issues; warnings are stored as searchable logs. With an
// empty DSN it silently degrades to stdout only, so development and
// production share one code path:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//		MinLevel:    slog.LevelWarn,
//	}, requestIDExtractor)
//
// NewNope returns a logger that discards everything; it is the default for
// components constructed without explicit logging.
package logger
