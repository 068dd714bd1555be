// Package logger builds slog loggers and provides typed attribute helpers.
//
//	log := logger.New(
//		logger.WithDevelopment("pubkit"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//	log.Info("server starting", logger.Component("server"), logger.Event("startup"))
//
// Environment presets:
//
//   - WithDevelopment: text output, debug level
//   - WithProduction: JSON output, info level
//
// Attribute helpers follow the empty-Attr convention: passing a nil error or an
// empty identifier yields slog.Attr{}, which slog drops, so callers never need
// nil checks around logger.Error(err).
//
// Context extractors attach request-scoped values on every *Context call:
//
//	log := logger.New(logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//		id, ok := ctx.Value(requestIDKey{}).(string)
//		return logger.RequestID(id), ok
//	}))
package logger
