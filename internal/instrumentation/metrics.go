package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency.
const (
	attrMethod   = "method"
	attrEndpoint = "endpoint"
)

// Metric names, matching the exposition the demo dashboards scrape.
const (
	MetricRequestsTotal   = "app_requests_total"
	MetricRequestDuration = "app_request_duration_seconds"
)

// Metrics provides methods for recording the demo service's metrics.
// The zero value is a no-op recorder; all methods are nil-guarded and
// never fail.
type Metrics struct {
	requestsTotal   metric.Int64Counter
	requestDuration metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.requestsTotal, err = meter.Int64Counter(
		MetricRequestsTotal,
		metric.WithDescription("Total number of requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricRequestsTotal, err)
	}

	m.requestDuration, err = meter.Float64Histogram(
		MetricRequestDuration,
		metric.WithDescription("Duration of requests"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s histogram: %w", MetricRequestDuration, err)
	}

	return m, nil
}

// IncRequest increments the request counter for the given method and
// endpoint. The label series is created lazily on first use; the
// underlying OTel instrument guarantees atomic accumulation under
// concurrent callers.
func (m *Metrics) IncRequest(ctx context.Context, method, endpoint string) {
	if m.requestsTotal == nil {
		return // Instrumentation not initialized
	}

	m.requestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrEndpoint, endpoint),
	))
}

// ObserveDuration appends a duration sample, in seconds, to the
// request duration histogram.
func (m *Metrics) ObserveDuration(ctx context.Context, seconds float64) {
	if m.requestDuration == nil {
		return // Instrumentation not initialized
	}

	m.requestDuration.Record(ctx, seconds)
}
