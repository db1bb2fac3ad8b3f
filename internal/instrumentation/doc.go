// Package instrumentation provides OpenTelemetry instrumentation for
// the loadpulse demo service.
//
// It exposes two recording surfaces, decoupled from their export
// mechanism:
//
// Metrics:
//   - app_requests_total: Counter of requests by method and endpoint
//   - app_request_duration_seconds: Histogram of request durations
//
// Tracing:
//
// Spans are created for each simulated unit of work (database query,
// validation, insert) and nest under the handler's root span through
// the request's context.Context. Span parenting is always derived
// from the context, never from process-global state, so concurrent
// requests keep isolated span trees.
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - OTEL_SERVICE_NAME: Service name (default: loadpulse)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	metrics := provider.Metrics()
//	metrics.IncRequest(ctx, "GET", "/api/users/{id}")
//	metrics.ObserveDuration(ctx, time.Since(start).Seconds())
package instrumentation
