package simple

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/pubkit/core/config"
	"github.com/dmitrymomot/pubkit/core/logger"
	"github.com/dmitrymomot/pubkit/core/response"
	"github.com/dmitrymomot/pubkit/core/router"
	"github.com/dmitrymomot/pubkit/core/server"
	"github.com/dmitrymomot/pubkit/core/static"
	"github.com/dmitrymomot/pubkit/middleware"
)

// App serves a public directory in front of a typed router.
type App struct {
	config   Config
	settings *static.Settings
	router   router.Router[*Context]
	server   *server.Server
	logger   *slog.Logger

	// staticBase is the static config before the config file is applied.
	// Reloads decode on top of it so that removed keys fall back.
	staticBase static.Config
}

type AppOption func(*App) error

// NewApp builds an App from the environment and opts. Options run in order
// after the environment is loaded, so they override it.
func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{config: cfg}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = logger.New(
			logger.WithLevel(logger.ParseLevel(app.config.LogLevel)),
			logger.WithAttr(slog.String("app", app.config.AppName), slog.String("env", app.config.Env)),
		)
	}

	app.staticBase = app.config.Static
	if app.config.ConfigFile != "" {
		if err := config.LoadFile(app.config.ConfigFile, &app.config.Static); err != nil {
			return nil, err
		}
	}
	app.settings = static.NewSettings(app.config.Static)
	if err := app.config.Static.Validate(); err != nil {
		app.logger.Warn("public directory unusable, static files will not be served",
			logger.Component("static"), logger.Error(err))
	}

	if app.router == nil {
		app.router = router.New(app.routerOptions()...)
	}

	if app.server == nil {
		s, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

func (app *App) routerOptions() []router.Option[*Context] {
	opts := []router.Option[*Context]{
		router.WithContextFactory(app.newContext),
		router.WithErrorHandler(response.LoggingErrorHandler[*Context](app.logger)),
		router.WithLogger[*Context](app.logger),
	}
	if app.config.RateLimit > 0 {
		opts = append(opts, router.WithMiddleware(middleware.RateLimit[*Context](middleware.RateLimitConfig{
			Rate:       rate.Limit(app.config.RateLimit),
			Burst:      app.config.RateLimitBurst,
			SetHeaders: true,
		})))
	}
	return opts
}

// Router returns the router for registering routes.
func (app *App) Router() router.Router[*Context] {
	return app.router
}

// Static returns the live static settings. Changes apply to the next request.
func (app *App) Static() *static.Settings {
	return app.settings
}

// Logger returns the application logger.
func (app *App) Logger() *slog.Logger {
	return app.logger
}

// Handler returns the full request pipeline: request IDs and access logs
// around public files, which are answered before any route.
func (app *App) Handler() http.Handler {
	h := static.Public(app.settings, static.WithLogger(app.logger))(app.router)
	h = middleware.LoggingHandler(middleware.LoggingConfig{Logger: app.logger})(h)
	return middleware.RequestIDHandler(middleware.RequestIDConfig{})(h)
}

// Run serves until ctx is canceled. With a config file set, edits to it
// replace the static settings while running.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if path := app.config.ConfigFile; path != "" {
		w, err := config.NewWatcher(path, app.staticBase, app.applyStatic,
			config.WithWatchLogger(app.logger))
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(ctx) })
	}

	g.Go(app.server.Run(ctx, app.Handler()))

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (app *App) applyStatic(cfg static.Config) {
	if err := cfg.Validate(); err != nil {
		app.logger.Warn("reloaded public directory unusable", logger.Component("static"), logger.Error(err))
	}
	app.settings.Store(cfg)
	app.logger.Info("static settings updated",
		logger.Component("static"),
		slog.Bool("enabled", cfg.Enabled),
		slog.String("public", cfg.Root),
	)
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithRouter(router router.Router[*Context]) AppOption {
	return func(app *App) error {
		if router == nil {
			return errors.New("router cannot be nil")
		}
		app.router = router
		return nil
	}
}

func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

// WithConfig replaces the environment configuration.
func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		return nil
	}
}

// WithStaticConfig sets the initial static settings.
func WithStaticConfig(cfg static.Config) AppOption {
	return func(app *App) error {
		app.config.Static = cfg
		return nil
	}
}

// WithConfigFile loads static settings from path and watches it during Run.
func WithConfigFile(path string) AppOption {
	return func(app *App) error {
		if path == "" {
			return errors.New("config file path cannot be empty")
		}
		app.config.ConfigFile = path
		return nil
	}
}
