package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/internal/metrics"
	"github.com/goliatone/go-regform/internal/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr  string
		grace time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registration form over HTTP",
		Long: `Serve the registration form.

Routes:
  GET  /              render a fresh form
  POST /              submit the form and re-render it
  POST /register      submit JSON, returns the record or the error map
  GET  /openapi.json  OpenAPI document of the active policy (?format=yaml)
  GET  /healthz       liveness probe
  GET  /metrics       Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			logger := flags.logger()
			srv, err := server.New(cfg,
				server.WithLogger(logger),
				server.WithMetrics(metrics.New(), prometheus.DefaultGatherer),
				server.WithShutdownGrace(grace),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config and REGFORM_ADDR)")
	cmd.Flags().DurationVar(&grace, "grace", 5*time.Second, "shutdown grace period")
	return cmd
}
