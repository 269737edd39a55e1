package main

import (
	"context"
	"net"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/liveview/internal/config"
	"github.com/vango-dev/liveview/internal/errors"
	"github.com/vango-dev/liveview/internal/listapp"
	"github.com/vango-dev/liveview/internal/logging"
)

type serveOptions struct {
	dir       string
	addr      string
	logLevel  string
	logFormat string
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Configuration comes from liveview.yaml and .env in the config directory,
then LIVEVIEW_* environment variables, then the flags below.

Examples:
  liveview serve
  liveview serve --addr=:3000
  liveview serve --config=/etc/liveview --log-level=debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "config", "c", ".", "Directory containing liveview.yaml and .env")
	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Listen address (overrides server.address)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	return cmd
}

// loadServeConfig loads the configuration and applies the flags on top.
func loadServeConfig(opts serveOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.dir)
	if err != nil {
		return nil, err
	}

	for key, value := range map[string]string{
		"server.address": opts.addr,
		"logging.level":  opts.logLevel,
		"logging.format": opts.logFormat,
	} {
		if value == "" {
			continue
		}
		if err := cfg.Set(key, value); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(ctx context.Context, cmd *cobra.Command, opts serveOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadServeConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if err != nil {
		return errors.New("E303").Wrap(err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv, _ := listapp.NewServer(ctx, cfg.ServerConfig(logger, registry))

	ln, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return errors.New("E201").
			WithSuggestion("Pick another address with --addr or LIVEVIEW_SERVER_ADDRESS").
			Wrap(err)
	}

	w := cmd.OutOrStdout()
	success(w, "liveview listening on %s", ln.Addr())
	if cfg.Live.Enabled {
		info(w, "live channel at http://%s/_live/", ln.Addr())
	}
	if cfg.Metrics.Enabled {
		info(w, "metrics at http://%s%s", ln.Addr(), cfg.Metrics.Path)
	}

	if err := srv.Serve(ctx, ln); err != nil {
		return errors.FromError(err, "E202")
	}
	return nil
}
