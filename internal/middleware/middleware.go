// Package middleware wraps HTTP handlers with cross-cutting concerns:
// request logging, CORS and cookie-based player auth.
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Wrap applies middlewares inside-out: the last one sees the request
// first.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}
