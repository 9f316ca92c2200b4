package internal

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"runtime"
)

// panicStackSize caps the stack trace captured on panic recovery.
const panicStackSize = 8192

// ServerErrorMiddleware is the outermost wrapper and the last line of
// defense: whatever escapes the rest of the stack, returned errors and
// panics alike, it makes a best-effort attempt to hand the client a
// terminal 500 response, then returns the original error unchanged so the
// host layer can log it. It never swallows errors.
//
// Response precedence: the configured catch-all handler if one is
// registered, else the debug page when debug is enabled, else a plain-text
// 500 body.
func ServerErrorMiddleware(handler ErrorHandler, debug bool) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					stack := make([]byte, panicStackSize)
					n := runtime.Stack(stack, false)
					err = &PanicError{Value: rec, Stack: stack[:n]}
					respondServerError(c, err, handler, debug)
				}
			}()

			if err = next(c); err != nil {
				respondServerError(c, err, handler, debug)
			}
			return err
		}
	}
}

// respondServerError attempts to notify the transport before the error
// re-surfaces. Once headers are out, or the connection is hijacked, nothing
// more can be sent.
func respondServerError(c Context, err error, handler ErrorHandler, debug bool) {
	if c.Written() || c.Hijacked() {
		return
	}

	switch {
	case handler != nil:
		if herr := handler(c, err); herr != nil {
			c.LogError("server error handler failed", "error", herr)
			if !c.Written() {
				_ = c.String(http.StatusInternalServerError, "Internal Server Error")
			}
		}
	case debug:
		_ = c.HTML(http.StatusInternalServerError, renderDebugPage(err))
	default:
		_ = c.String(http.StatusInternalServerError, "Internal Server Error")
	}
}

// debugPageTemplate is the diagnostic page shown in debug mode. It exposes
// internals and must never render in production deployments.
var debugPageTemplate = template.Must(template.New("debug").Parse(`<html>
<head><title>500 Internal Server Error</title></head>
<body>
<h1>500 Internal Server Error</h1>
<p><b>{{.Type}}</b>: {{.Message}}</p>
<h2>Traceback</h2>
<pre>{{.Stack}}</pre>
</body>
</html>
`))

func renderDebugPage(err error) string {
	var stack string
	if pe, ok := AsPanicError(err); ok {
		stack = string(pe.Stack)
	} else {
		buf := make([]byte, panicStackSize)
		n := runtime.Stack(buf, false)
		stack = string(buf[:n])
	}

	var buf bytes.Buffer
	_ = debugPageTemplate.Execute(&buf, map[string]string{
		"Type":    fmt.Sprintf("%T", err),
		"Message": err.Error(),
		"Stack":   stack,
	})
	return buf.String()
}
