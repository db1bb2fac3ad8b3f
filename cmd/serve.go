package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/obskit/loadpulse/internal/instrumentation"
	"github.com/obskit/loadpulse/internal/logging"
	"github.com/obskit/loadpulse/internal/server"
	"github.com/obskit/loadpulse/internal/simulate"
)

func newServeCmd() *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the instrumented demo HTTP service",
		Long: `Starts the demo HTTP service on the configured address.

The service exposes simulated user endpoints that emit request metrics
and tracing spans, a health endpoint, and Prometheus exposition on
/metrics and /custom-metrics. Instrumentation is configured through
OTEL_* environment variables (see the instrumentation package docs).`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(httpAddr)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http-addr", "",
		"HTTP listen address (default \":8000\"). Can also use HTTP_ADDR env var.")

	return cmd
}

func runServe(httpAddr string) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logging.WithOperation(slog.Default(), "serve")

	cfg, err := server.ConfigFromEnv()
	if err != nil {
		return err
	}
	if httpAddr != "" {
		cfg.Addr = httpAddr
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		flushCtx, cancelFlush := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancelFlush()
		if err := provider.Shutdown(flushCtx); err != nil {
			log.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	ops := simulate.NewOps(provider.Tracer(instrumentation.TracerName), simulate.NewRand())
	srv := server.New(cfg, provider, ops)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	log.Info("loadpulse service started",
		"addr", cfg.Addr,
		"version", version,
		"metrics_exporter", instrConfig.MetricsExporter,
		"tracing_exporter", instrConfig.TracingExporter,
	)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-shutdownCtx.Done():
	}

	log.Info("shutdown signal received")

	drainCtx, cancelDrain := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
	defer cancelDrain()
	if err := srv.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
