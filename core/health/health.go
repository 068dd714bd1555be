// Package health provides liveness and readiness route handlers.
//
//	r.Get("/health/live", health.Liveness[*simple.Context])
//	r.Get("/health/ready", health.Readiness[*simple.Context](log, publicDirCheck))
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pubkit/core/handler"
	"github.com/dmitrymomot/pubkit/core/logger"
	"github.com/dmitrymomot/pubkit/core/response"
)

// Check reports whether a dependency is usable.
type Check func(context.Context) error

// Liveness always answers "ALIVE".
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// Readiness answers "READY" when every check passes and 503 otherwise.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.WarnContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
				return func(w http.ResponseWriter, r *http.Request) error {
					return response.ErrServiceUnavailable.WithError(err)
				}
			}
		}
		return response.String("READY")
	}
}
