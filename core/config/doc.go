// Package config loads typed configuration from the environment and from
// YAML or TOML files, and watches files for changes.
//
// Environment loading uses caarlos0/env struct tags. A .env file in the
// working directory is loaded once on first use, and each configuration type
// is parsed only once per process:
//
//	type StaticConfig struct {
//		Enabled bool   `env:"STATIC_ENABLED" envDefault:"true"`
//		Root    string `env:"STATIC_PUBLIC_DIR"`
//	}
//
//	var cfg StaticConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// File loading picks the decoder by extension (.yaml, .yml, .toml):
//
//	if err := config.LoadFile("pubkit.yaml", &cfg); err != nil { ... }
//
// Watch re-reads a file whenever it is written and hands each successfully
// decoded value to a callback, which is how runtime settings are reloaded
// without a restart.
package config
