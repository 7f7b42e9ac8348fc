package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/pageswap/internal/config"
	"github.com/vango-dev/pageswap/pkg/inspect"
	"github.com/vango-dev/pageswap/pkg/telemetry"
)

func serveCmd(opts *globalOptions) *cobra.Command {
	var (
		port    int
		host    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the inspection server",
		Long: `Start an HTTP server that decomposes URLs and resolves pages.

Routes:
  GET  /healthz
  GET  /decompose?url=...
  POST /resolve?url=...   (body: page markup, or empty to fetch url)
  GET  /ws                (JSON {"url","markup"} messages)
  GET  /metrics           (unless metrics are disabled)

Examples:
  pageswap serve
  pageswap serve --port=8080 --host=0.0.0.0
  pageswap serve --allow-origin=http://localhost:3000

Cross-origin browser requests to /resolve and /ws are refused unless the
origin is allowed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, origins...)
			return runServe(opts, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "Browser origin allowed to call /resolve and /ws (repeatable)")

	return cmd
}

func runServe(opts *globalOptions, cfg *config.Config) error {
	logger := opts.logger()

	var (
		metrics  *telemetry.Metrics
		gatherer prometheus.Gatherer
	)
	if !cfg.Metrics.Disabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = telemetry.NewMetrics(
			telemetry.WithNamespace(cfg.Metrics.Namespace),
			telemetry.WithRegistry(reg),
		)
		gatherer = reg
	}

	nav, err := newNavigator(cfg, opts.root, metrics, telemetry.NewTracer(), logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: inspect.New(inspect.Config{
			Navigator:      nav,
			Gatherer:       gatherer,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Logger:         logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	success("Inspection server running")
	info("http://%s", cfg.Server.Addr())
	fmt.Println()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
