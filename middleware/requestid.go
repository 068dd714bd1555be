package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/pubkit/core/handler"
	"github.com/dmitrymomot/pubkit/core/router"
)

type requestIDContextKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool
	// Generator creates new IDs (default: UUID v4).
	Generator func() string
	// HeaderName is the request and response header (default: "X-Request-ID").
	HeaderName string
	// UseExisting keeps an ID supplied by the client.
	UseExisting bool
}

func (cfg *RequestIDConfig) setDefaults() {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string { return uuid.NewString() }
	}
}

func (cfg RequestIDConfig) idFor(r *http.Request) string {
	if cfg.UseExisting {
		if id := r.Header.Get(cfg.HeaderName); id != "" {
			return id
		}
	}
	return cfg.Generator()
}

// RequestID tags every request with a fresh UUID, stored in the context
// and echoed in the X-Request-ID response header.
func RequestID[C handler.Context]() handler.Middleware[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID middleware with custom configuration.
func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig) handler.Middleware[C] {
	cfg.setDefaults()

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			id, ok := GetRequestID(ctx)
			if !ok {
				id = cfg.idFor(ctx.Request())
				ctx.SetValue(requestIDContextKey{}, id)
			}

			resp := next(ctx)
			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set(cfg.HeaderName, id)
				return resp(w, r)
			}
		}
	}
}

// RequestIDHandler is the http.Handler form of RequestIDWithConfig. IDs it
// assigns are visible to GetRequestID in routed handlers.
func RequestIDHandler(cfg RequestIDConfig) func(http.Handler) http.Handler {
	cfg.setDefaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(router.NewContext(w, r, nil)) {
				next.ServeHTTP(w, r)
				return
			}

			id := cfg.idFor(r)
			w.Header().Set(cfg.HeaderName, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDContextKey{}, id)))
		})
	}
}

// GetRequestID returns the ID stored by RequestID or RequestIDHandler.
func GetRequestID(ctx handler.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok && id != ""
}

func requestIDFrom(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(requestIDContextKey{}).(string)
	return id, ok && id != ""
}
