package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/pubkit/app/simple"
	"github.com/dmitrymomot/pubkit/core/config"
	"github.com/dmitrymomot/pubkit/core/health"
	"github.com/dmitrymomot/pubkit/core/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pubkit",
		Short:         "Serve a public directory in front of application routes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pubkit version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pubkit %s\n", version)
		},
	}
}

type serveFlags struct {
	public     string
	static     bool
	addr       string
	configFile string
}

func newServeCmd() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Files under the public directory are answered for GET and HEAD before any
route. Flags override the STATIC_*, SERVER_* and CONFIG_FILE environment
variables. A config file holding "static" and "public" keys is reloaded
when it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg simple.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			applyServeFlags(cmd, f, &cfg)

			app, err := simple.NewApp(simple.WithConfig(cfg))
			if err != nil {
				return err
			}
			app.Router().Get("/health/live", health.Liveness[*simple.Context])
			app.Router().Get("/health/ready", health.Readiness[*simple.Context](app.Logger(), publicDirReady(app)))

			app.Logger().Info("starting pubkit",
				logger.Version(version),
				logger.Component("cli"),
			)
			return app.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.public, "public", "", "public directory to serve files from")
	flags.BoolVar(&f.static, "static", true, "serve files from the public directory")
	flags.StringVar(&f.addr, "addr", "", "listen address (default from SERVER_ADDR)")
	flags.StringVar(&f.configFile, "config", "", "YAML or TOML file with static settings")
	return cmd
}

// applyServeFlags copies explicitly set flags over cfg.
func applyServeFlags(cmd *cobra.Command, f serveFlags, cfg *simple.Config) {
	flags := cmd.Flags()
	if flags.Changed("public") {
		cfg.Static.Root = f.public
	}
	if flags.Changed("static") {
		cfg.Static.Enabled = f.static
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = f.addr
	}
	if flags.Changed("config") {
		cfg.ConfigFile = f.configFile
	}
}

// publicDirReady fails while static serving is on but the public
// directory cannot be used.
func publicDirReady(app *simple.App) health.Check {
	return func(context.Context) error {
		cfg := app.Static().Load()
		if !cfg.Active() {
			return nil
		}
		return cfg.Validate()
	}
}
