package static

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pubkit/core/logger"
)

type publicOptions struct {
	logger *slog.Logger
}

// PublicOption configures Public.
type PublicOption func(*publicOptions)

// WithLogger sets the logger for lookups that failed for reasons other than
// a plain miss (permission errors, broken symlinks, interrupted sends).
func WithLogger(log *slog.Logger) PublicOption {
	return func(o *publicOptions) {
		if log != nil {
			o.logger = log
		}
	}
}

// Public returns middleware that answers GET and HEAD requests from the
// public directory described by settings before next gets a chance to run.
// Anything the resolver declines, and every other method, passes through to
// next unchanged. Settings are read per request, so runtime changes apply
// to the next request.
func Public(settings *Settings, opts ...PublicOption) func(http.Handler) http.Handler {
	o := publicOptions{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			f, err := Resolve(r.URL.Path, settings.Load())
			if err != nil {
				o.logMiss(r, err)
				next.ServeHTTP(w, r)
				return
			}

			if err := Send(w, r, f); err != nil {
				if errors.Is(err, ErrNotFound) {
					o.logMiss(r, err)
					next.ServeHTTP(w, r)
					return
				}
				o.logger.DebugContext(r.Context(), "static response interrupted",
					logger.Component("static"),
					logger.Path(r.URL.Path),
					logger.File(f.Path),
					logger.Error(err),
				)
			}
		})
	}
}

// logMiss records misses that carry a filesystem cause.
func (o publicOptions) logMiss(r *http.Request, err error) {
	if err == ErrNotFound {
		return
	}
	o.logger.DebugContext(r.Context(), "static lookup declined",
		logger.Component("static"),
		logger.Path(r.URL.Path),
		logger.Error(err),
	)
}
