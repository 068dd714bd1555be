package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/pubkit/core/handler"
	"github.com/dmitrymomot/pubkit/core/logger"
	"github.com/dmitrymomot/pubkit/core/router"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool
	// Logger receives the records (default: slog.Default()).
	Logger *slog.Logger
	// Level for successful requests (default: info). 4xx log at warn, 5xx at error.
	Level slog.Level
	// LogHeaders adds request headers to the record.
	LogHeaders bool
	// SensitiveHeaders are redacted when LogHeaders is set.
	SensitiveHeaders []string
	// SlowRequestThreshold promotes slow requests to warn (default: 5s).
	SlowRequestThreshold time.Duration
	// Component is the component attribute (default: "http").
	Component string
}

func (cfg *LoggingConfig) setDefaults() {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{"Authorization", "Cookie", "Set-Cookie", "X-Api-Key"}
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}
}

// Logging logs one record per routed request with the default configuration.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger is Logging with a custom logger.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware with custom configuration.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	cfg.setDefaults()

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
				err := resp(rec, r)
				cfg.record(r, rec, time.Since(start), err)
				return err
			}
		}
	}
}

// LoggingHandler is the http.Handler form of LoggingWithConfig. It sees
// every request, including those answered before routing, and logs the
// status the client actually received.
func LoggingHandler(cfg LoggingConfig) func(http.Handler) http.Handler {
	cfg.setDefaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(router.NewContext(w, r, nil)) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			cfg.record(r, rec, time.Since(start), nil)
		})
	}
}

// record writes one log record for a finished request. err is the handler
// error, if any; when nothing was written yet its StatusCode is used.
func (cfg LoggingConfig) record(r *http.Request, rec *statusRecorder, elapsed time.Duration, err error) {
	status := rec.status
	if err != nil && !rec.wrote {
		status = statusOf(err)
	}

	attrs := []slog.Attr{
		logger.Component(cfg.Component),
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.StatusCode(status),
		logger.BytesOut(rec.size),
		logger.Duration(elapsed),
		logger.RemoteAddr(r.RemoteAddr),
	}
	if r.URL.RawQuery != "" {
		attrs = append(attrs, logger.Query(r.URL.RawQuery))
	}
	if id, ok := requestIDFrom(r); ok {
		attrs = append(attrs, logger.RequestID(id))
	}
	if cfg.LogHeaders {
		attrs = append(attrs, slog.Any("headers", redact(r.Header, cfg.SensitiveHeaders)))
	}

	level := cfg.Level
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
		attrs = append(attrs, logger.Error(err))
	case status >= http.StatusBadRequest:
		level = slog.LevelWarn
	case elapsed > cfg.SlowRequestThreshold:
		level = slog.LevelWarn
		attrs = append(attrs, slog.Bool("slow_request", true))
	}

	cfg.Logger.LogAttrs(r.Context(), level, "http request", attrs...)
}

func statusOf(err error) int {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

func redact(h http.Header, sensitive []string) map[string]any {
	out := make(map[string]any, len(h))
	for key, values := range h {
		switch {
		case slices.Contains(sensitive, key):
			out[key] = "[REDACTED]"
		case len(values) == 1:
			out[key] = values[0]
		default:
			out[key] = values
		}
	}
	return out
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int64
	wrote  bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wrote {
		rw.status = code
		rw.wrote = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.wrote {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
