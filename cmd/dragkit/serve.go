package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/dragkit/pkg/metrics"
	"github.com/vango-dev/dragkit/pkg/server"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		Long: `Start the demo server and serve the card board.

Examples:
  dragkit serve
  dragkit serve --port=9000
  dragkit serve --overlay --activation-distance=0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a)
		},
	}

	flags := cmd.Flags()
	flags.StringP("host", "H", "", "Host to bind to")
	flags.IntP("port", "p", 0, "Port to listen on")
	flags.Bool("overlay", false, "Render drags in an overlay instead of moving cards")
	flags.Float64("activation-distance", 0, "Pointer dead zone in pixels")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.Bool("metrics", true, "Serve Prometheus metrics")

	bindings := map[string]string{
		"server.host":             "host",
		"server.port":             "port",
		"drag.useOverlay":         "overlay",
		"drag.activationDistance": "activation-distance",
		"log.level":               "log-level",
		"metrics.enabled":         "metrics",
	}
	for key, name := range bindings {
		// Only errors on a nil flag.
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	return cmd
}

func runServe(ctx context.Context, a *app) error {
	cfg, err := a.load()
	if err != nil {
		return err
	}

	logger := cfg.NewLogger(os.Stderr)
	opts := []server.Option{
		server.WithLogger(logger),
		server.WithTracer(otel.Tracer(cfg.Tracing.TracerName)),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, server.WithMetrics(metrics.New(metrics.WithNamespace(cfg.Metrics.Namespace))))
	}
	srv := server.New(server.FromConfig(cfg), opts...)

	printBanner(a.out)
	success(a.out, "Serving %s", urlStyle.Render(cfg.URL()))
	if file := cfg.File(); file != "" {
		field(a.out, "Config:", file)
	}
	field(a.out, "Overlay:", strconv.FormatBool(cfg.Drag.UseOverlay))
	if cfg.Metrics.Enabled {
		field(a.out, "Metrics:", cfg.URL()+cfg.Metrics.Path)
	}
	field(a.out, "", "Press Ctrl+C to stop")

	return srv.Run(ctx)
}
