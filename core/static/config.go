package static

import (
	"fmt"
	"os"
	"sync/atomic"
)

// Config controls public-directory serving.
type Config struct {
	// Enabled turns static serving on or off.
	Enabled bool `env:"STATIC_ENABLED" envDefault:"true" yaml:"static" toml:"static"`
	// Root is the public directory. Empty means unset, which disables serving.
	Root string `env:"STATIC_PUBLIC_DIR" yaml:"public" toml:"public"`
}

// Active reports whether requests should be resolved at all.
func (c Config) Active() bool {
	return c.Enabled && c.Root != ""
}

// Validate reports a root that is set but is not an accessible directory.
// Serving tolerates such a root (every lookup misses), so callers usually
// log the error rather than fail.
func (c Config) Validate() error {
	if c.Root == "" {
		return nil
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("static: public directory %q: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("static: public directory %q is not a directory", c.Root)
	}
	return nil
}

// Settings holds the live Config. The zero value serves nothing.
// Safe for concurrent use; readers see either the old or the new Config.
type Settings struct {
	cfg atomic.Pointer[Config]
}

// NewSettings returns Settings initialized with cfg.
func NewSettings(cfg Config) *Settings {
	s := &Settings{}
	s.Store(cfg)
	return s
}

// Load returns the current Config.
func (s *Settings) Load() Config {
	if cfg := s.cfg.Load(); cfg != nil {
		return *cfg
	}
	return Config{}
}

// Store replaces the current Config.
func (s *Settings) Store(cfg Config) {
	s.cfg.Store(&cfg)
}

// SetEnabled flips static serving on or off.
func (s *Settings) SetEnabled(enabled bool) {
	s.update(func(c *Config) { c.Enabled = enabled })
}

// SetRoot changes the public directory. An empty root disables serving.
func (s *Settings) SetRoot(root string) {
	s.update(func(c *Config) { c.Root = root })
}

func (s *Settings) update(fn func(*Config)) {
	for {
		old := s.cfg.Load()
		var next Config
		if old != nil {
			next = *old
		}
		fn(&next)
		if s.cfg.CompareAndSwap(old, &next) {
			return
		}
	}
}
