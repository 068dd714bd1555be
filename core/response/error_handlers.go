package response

import (
	"log/slog"

	"github.com/dmitrymomot/pubkit/core/handler"
	"github.com/dmitrymomot/pubkit/core/logger"
)

// ErrorHandler renders errors as plain text using the status the error
// reports, defaulting to 500.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// LoggingErrorHandler is ErrorHandler that also logs server-side failures.
// Client errors (4xx) are logged at debug level.
func LoggingErrorHandler[C handler.Context](log *slog.Logger) handler.ErrorHandler[C] {
	return func(ctx C, err error) {
		httpErr := AsHTTPError(err)

		level := slog.LevelDebug
		if httpErr.Status >= 500 {
			level = slog.LevelError
		}
		log.LogAttrs(ctx, level, "request failed",
			logger.Component("http"),
			logger.Method(ctx.Request().Method),
			logger.Path(ctx.Request().URL.Path),
			logger.StatusCode(httpErr.Status),
			logger.Error(err),
		)

		Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
	}
}
