package simple

import (
	"github.com/dmitrymomot/pubkit/core/server"
	"github.com/dmitrymomot/pubkit/core/static"
)

// Config is the application configuration read from the environment.
type Config struct {
	Static static.Config
	Server server.Config

	AppName  string `env:"APP_NAME" envDefault:"pubkit"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// ConfigFile holds static settings (keys "static" and "public") in YAML
	// or TOML. It is applied at startup and reloaded on change.
	ConfigFile string `env:"CONFIG_FILE"`

	// RateLimit is requests per second per client for routed requests.
	// Zero disables limiting.
	RateLimit      float64 `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}
