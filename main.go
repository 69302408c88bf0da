package main

import (
	"fmt"
	"os"

	"feed-dashboard/config"
	"feed-dashboard/fetcher"
	"feed-dashboard/handlers"
	"feed-dashboard/sources"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	addr       string
)

var rootCmd = &cobra.Command{
	Use:   "feed-dashboard",
	Short: "Live dashboard for public seismic, air-quality and crypto feeds",
	Long: `feed-dashboard serves a single page that fetches one public feed per refresh,
flattens it into a table, draws a chart for it and prints two canned commentary lines.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if addr != "" {
			cfg.Server.Addr = addr
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return run(cfg)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
}

func run(cfg *config.Config) error {
	log.Logger = cfg.Logging.Logger(os.Stderr)

	registry, err := sources.NewRegistry(sources.Builtin(cfg.Sources)...)
	if err != nil {
		return fmt.Errorf("could not build source registry: %w", err)
	}
	f := fetcher.New(
		fetcher.WithTimeout(cfg.FetchTimeout()),
		fetcher.WithFallback(cfg.Fetch.Fallback),
	)

	gin.SetMode(cfg.Server.Mode)
	r, err := handlers.Router(handlers.New(registry, f))
	if err != nil {
		return fmt.Errorf("could not load templates: %w", err)
	}

	log.Info().
		Str("addr", cfg.Server.Addr).
		Dur("timeout", f.Timeout()).
		Bool("fallback", f.Fallback()).
		Strs("sources", registry.Names()).
		Msg("starting feed dashboard")

	if err := r.Run(cfg.Server.Addr); err != nil {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
