package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pubkit/core/handler"
)

// Option configures a Router in New.
type Option[C handler.Context] func(*mux[C])

// WithErrorHandler replaces the plain-text default. It receives handler
// errors, ErrNotFound, ErrMethodNotAllowed and PanicError alike, and is
// inherited by mounted sub-routers. A nil handler is ignored.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware is Use at construction time.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithContextFactory builds the per-request context. params holds the
// matched URL parameters and is nil when there are none.
func WithContextFactory[C handler.Context](f func(w http.ResponseWriter, r *http.Request, params map[string]string) C) Option[C] {
	return func(m *mux[C]) {
		m.newContext = f
	}
}

// WithLogger receives panics that happen after the response was written.
// The default discards them.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if logger != nil {
			m.logger = logger
		}
	}
}
