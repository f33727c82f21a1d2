package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/crucible/engine"
	"github.com/katalvlaran/crucible/internal/server"
	"github.com/katalvlaran/crucible/metrics"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long:  `Starts the HTTP API (POST /day17, POST /solve, GET /metrics) and stops gracefully on SIGINT or SIGTERM.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			store, err := c.openCache(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rec := metrics.New(true)
			svc, err := engine.New(
				engine.WithLogger(logger),
				engine.WithPolicies(c.cfg.DijkstraPolicies()...),
				engine.WithCache(store, c.cfg.Cache.TTL),
				engine.WithCachePrefix(c.cfg.Cache.Prefix),
				engine.WithMetrics(rec),
				engine.WithMaxCells(c.cfg.Server.MaxCells),
			)
			if err != nil {
				return err
			}

			srv := server.New(svc,
				server.WithLogger(logger),
				server.WithMetricsHandler(rec.Handler()),
			)
			sc := c.cfg.Server

			return srv.Run(ctx, sc.Addr, sc.ReadTimeout, sc.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :9000)")

	return cmd
}
