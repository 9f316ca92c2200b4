// Package middlewares provides HTTP middleware for Plinth applications.
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing. It checks
// incoming headers for existing IDs or generates a new UUID:
//
//	app := plinth.New(
//	    plinth.WithLogger("api", middlewares.RequestIDExtractor()),
//	    plinth.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// # Timeout
//
// Timeout enforces request deadlines and returns a typed TimeoutError for
// the error layers. The handler goroutine keeps running after timeout;
// watch GetTimeoutContext(c).Done() in long operations:
//
//	plinth.WithMiddleware(middlewares.Timeout(5 * time.Second)),
//	plinth.ExceptionHandlerFor[*middlewares.TimeoutError](func(c plinth.Context, err error) error {
//	    return c.String(http.StatusGatewayTimeout, "Gateway Timeout")
//	}),
//
// # CORS
//
// CORS answers preflight requests and adds response headers for allowed
// origins:
//
//	middlewares.CORS(
//	    middlewares.WithAllowOrigins("https://app.example.com"),
//	    middlewares.WithAllowCredentials(),
//	)
//
// # Logging
//
// Logging emits one structured line per request with method, path, status,
// size, and duration.
//
// # Recommended Order
//
//	plinth.WithMiddleware(
//	    middlewares.CORS(),      // handle preflight before anything else
//	    middlewares.RequestID(), // assign ID for all subsequent logging
//	    middlewares.Logging(),
//	    middlewares.Timeout(5*time.Second),
//	)
//
// Middleware registered this way runs outside the exception layer: errors
// it returns reach the server-error layer directly.
package middlewares
