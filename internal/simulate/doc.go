// Package simulate implements the demo service's simulated backend
// operations: user lookup, user creation, and random error injection.
//
// Each operation emulates I/O by suspending for a randomized latency
// drawn from a fixed range, and wraps every stage of work in its own
// tracing span with semantic attributes. The latency ranges and the
// error-injection rate are fixed constants chosen so that dashboards
// built against the service see realistic-looking variance.
//
// Randomness is injected through the Rand interface so tests can force
// either branch deterministically; span parenting flows through the
// request's context.Context.
package simulate
