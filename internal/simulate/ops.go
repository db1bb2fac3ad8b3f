package simulate

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/obskit/loadpulse/internal/instrumentation"
)

// Fixed simulation constants. Dashboards and tests built against this
// service depend on these exact ranges, so they are not configurable.
const (
	// NotFoundUserID is the sentinel user ID that always fails lookup.
	NotFoundUserID = 404

	// Uniform latency ranges, in seconds.
	fetchLatencyMin    = 0.1
	fetchLatencyMax    = 0.5
	validateLatencyMin = 0.05
	validateLatencyMax = 0.15
	insertLatencyMin   = 0.15
	insertLatencyMax   = 0.65

	// errorRate is the probability that MaybeFail fails.
	errorRate = 0.3

	// New user IDs are drawn uniformly from [newUserIDMin, newUserIDMax].
	newUserIDMin = 1000
	newUserIDMax = 9999
)

// User is the payload of a successful user operation. Username and
// email are derived deterministically from the user ID.
type User struct {
	UserID         int     `json:"user_id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Created        bool    `json:"created,omitempty"`
	ProcessingTime float64 `json:"processing_time"`
}

// sleepFunc suspends the calling task for d without blocking other
// concurrent operations, honoring context cancellation.
type sleepFunc func(ctx context.Context, d time.Duration) error

// Ops implements the simulated backend operations. It depends only on
// a tracer for span emission and an injected random source; metrics
// around operations are recorded by the dispatcher.
type Ops struct {
	tracer trace.Tracer
	rng    Rand
	sleep  sleepFunc
}

// NewOps creates the simulated operations with the given trace sink
// and random source.
func NewOps(tracer trace.Tracer, rng Rand) *Ops {
	return &Ops{
		tracer: tracer,
		rng:    rng,
		sleep:  sleepContext,
	}
}

// FetchUser simulates a database lookup of a user by ID.
//
// The whole lookup runs inside a "simulate_database_query" child span
// carrying the query's semantic attributes. The sentinel ID 404 always
// fails with a NotFound failure; any other ID succeeds with a payload
// derived from the ID and the drawn latency.
func (o *Ops) FetchUser(ctx context.Context, userID int) (*User, error) {
	ctx, span := o.tracer.Start(ctx, "simulate_database_query",
		trace.WithAttributes(
			attribute.Int(instrumentation.SpanAttrUserID, userID),
			attribute.String(instrumentation.SpanAttrDBOperation, "select"),
			attribute.String(instrumentation.SpanAttrDBTable, "users"),
		))
	defer span.End()

	latency := o.uniform(fetchLatencyMin, fetchLatencyMax)
	span.SetAttributes(attribute.Float64(instrumentation.SpanAttrDBDurationMS, latency*1000))

	if err := o.sleep(ctx, durationSeconds(latency)); err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	if userID == NotFoundUserID {
		failure := NotFoundError("User not found")
		instrumentation.SetSpanError(span, failure)
		return nil, failure
	}

	span.SetAttributes(attribute.Bool(instrumentation.SpanAttrUserFound, true))

	return &User{
		UserID:         userID,
		Username:       fmt.Sprintf("user_%d", userID),
		Email:          fmt.Sprintf("user_%d@example.com", userID),
		ProcessingTime: latency,
	}, nil
}

// CreateUser simulates creating a new user with a random ID.
//
// The operation runs two sequential stages, each in its own child
// span: "validate_user_data" followed by "database_insert". The
// reported processing time is the sum of both stage latencies.
func (o *Ops) CreateUser(ctx context.Context) (*User, error) {
	userID := newUserIDMin + o.rng.Intn(newUserIDMax-newUserIDMin+1)

	validateLatency := o.uniform(validateLatencyMin, validateLatencyMax)
	validateCtx, validateSpan := o.tracer.Start(ctx, "validate_user_data",
		trace.WithAttributes(
			attribute.Float64(instrumentation.SpanAttrValidationDurationMS, validateLatency*1000),
			attribute.Bool(instrumentation.SpanAttrValidationPassed, true),
		))
	if err := o.sleep(validateCtx, durationSeconds(validateLatency)); err != nil {
		instrumentation.SetSpanError(validateSpan, err)
		validateSpan.End()
		return nil, err
	}
	validateSpan.End()

	insertLatency := o.uniform(insertLatencyMin, insertLatencyMax)
	insertCtx, insertSpan := o.tracer.Start(ctx, "database_insert",
		trace.WithAttributes(
			attribute.String(instrumentation.SpanAttrDBOperation, "insert"),
			attribute.String(instrumentation.SpanAttrDBTable, "users"),
			attribute.Float64(instrumentation.SpanAttrDBDurationMS, insertLatency*1000),
			attribute.Int(instrumentation.SpanAttrDBRowsAffected, 1),
		))
	if err := o.sleep(insertCtx, durationSeconds(insertLatency)); err != nil {
		instrumentation.SetSpanError(insertSpan, err)
		insertSpan.End()
		return nil, err
	}
	insertSpan.End()

	return &User{
		UserID:         userID,
		Username:       fmt.Sprintf("user_%d", userID),
		Email:          fmt.Sprintf("user_%d@example.com", userID),
		Created:        true,
		ProcessingTime: validateLatency + insertLatency,
	}, nil
}

// MaybeFail fails with an Internal failure roughly 30% of the time and
// otherwise returns a success message. It has no stages to trace, so
// it opens no spans, but the dispatcher still records it in the
// request counter.
func (o *Ops) MaybeFail(ctx context.Context) (string, error) {
	if o.rng.Float64() < errorRate {
		return "", InternalError("Simulated internal server error")
	}
	return "Success! No error this time.", nil
}

// uniform draws a value uniformly from [min, max).
func (o *Ops) uniform(min, max float64) float64 {
	return min + o.rng.Float64()*(max-min)
}

// durationSeconds converts a float number of seconds to a Duration.
func durationSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// sleepContext suspends for d, returning early with the context's
// error if the context is cancelled first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
