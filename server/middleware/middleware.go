package middleware

import (
	"net/http"
	"slices"
)

// Middleware decorates an http.Handler. The server wraps the whole Gin
// engine, so middleware also sees requests that match no route.
type Middleware func(http.Handler) http.Handler

// Chain composes middlewares; the first one sees the request first.
func Chain(middlewares ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for _, mw := range slices.Backward(middlewares) {
			h = mw(h)
		}
		return h
	}
}
