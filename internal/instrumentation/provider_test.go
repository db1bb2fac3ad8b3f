package instrumentation

import (
	"context"
	"testing"
	"time"
)

func TestNewProvider_Disabled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, Config{Enabled: false})
	if err != nil {
		t.Fatalf("failed to create disabled provider: %v", err)
	}

	if provider.Enabled() {
		t.Error("expected provider to be disabled")
	}
	if provider.Metrics() == nil {
		t.Error("expected no-op metrics recorder, got nil")
	}
	if provider.PrometheusEnabled() {
		t.Error("disabled provider should not have a prometheus exporter")
	}

	// No-op recorder must be safe to call
	provider.Metrics().IncRequest(ctx, "GET", "/health")
	provider.Metrics().ObserveDuration(ctx, 0.1)

	// Tracer should be a noop tracer, not nil
	tracer := provider.Tracer("test")
	_, span := tracer.Start(ctx, "noop")
	span.End()

	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("shutdown of disabled provider should not fail: %v", err)
	}
}

func TestNewProvider_Prometheus(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, Config{
		ServiceName:       "test-service",
		ServiceVersion:    "1.0.0",
		Enabled:           true,
		MetricsExporter:   ExporterPrometheus,
		TracingExporter:   ExporterNone,
		TraceSamplingRate: 1.0,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	if !provider.Enabled() {
		t.Error("expected provider to be enabled")
	}
	if provider.Metrics() == nil {
		t.Fatal("expected metrics to be non-nil")
	}
	if !provider.PrometheusEnabled() {
		t.Error("expected prometheus exporter to be configured")
	}
}

func TestNewProvider_InvalidExporter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		Enabled:         true,
		MetricsExporter: "bogus",
		TracingExporter: ExporterNone,
	})
	if err == nil {
		t.Fatal("expected error for unsupported metrics exporter")
	}
}

func TestNewProvider_OTLPRequiresEndpoint(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		Enabled:         true,
		MetricsExporter: ExporterOTLP,
		TracingExporter: ExporterNone,
	})
	if err == nil {
		t.Fatal("expected error when OTLP metrics exporter has no endpoint")
	}
}
