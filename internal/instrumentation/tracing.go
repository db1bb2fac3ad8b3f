package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the loadpulse package.
const TracerName = "github.com/obskit/loadpulse"

// Span attribute keys for simulated operations.
const (
	// SpanAttrUserID is the user identifier attribute.
	SpanAttrUserID = "user.id"

	// SpanAttrUserFound indicates a successful user lookup.
	SpanAttrUserFound = "user.found"

	// SpanAttrDBOperation is the simulated database operation type.
	SpanAttrDBOperation = "db.operation"

	// SpanAttrDBTable is the simulated database table.
	SpanAttrDBTable = "db.table"

	// SpanAttrDBDurationMS is the simulated database latency in milliseconds.
	SpanAttrDBDurationMS = "db.duration_ms"

	// SpanAttrDBRowsAffected is the simulated row count of a write.
	SpanAttrDBRowsAffected = "db.rows_affected"

	// SpanAttrValidationDurationMS is the simulated validation latency in milliseconds.
	SpanAttrValidationDurationMS = "validation.duration_ms"

	// SpanAttrValidationPassed indicates validation succeeded.
	SpanAttrValidationPassed = "validation.passed"
)

// StartRequestSpan starts the root span for an inbound HTTP request.
// The span is parented to the span carried by ctx, if any, so
// concurrently executing requests keep isolated span trees.
// The caller is responsible for ending the span on every exit path.
func StartRequestSpan(ctx context.Context, tracer trace.Tracer, method, route string) (context.Context, trace.Span) {
	return tracer.Start(ctx, method+" "+route,
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// SetSpanError records an error on the span and sets the status to error.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// SpanContextString returns a human-readable trace context string.
// Format: "trace_id=X span_id=Y" or empty string if no valid context.
func SpanContextString(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return "trace_id=" + span.SpanContext().TraceID().String() +
		" span_id=" + span.SpanContext().SpanID().String()
}
