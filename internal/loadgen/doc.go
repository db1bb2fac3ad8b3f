// Package loadgen drives rate-controlled, time-bounded traffic against
// the demo service.
//
// The generator runs a single sequential control loop: it picks one of
// a fixed catalog of endpoints uniformly at random, issues the request
// with a bounded timeout, updates running statistics, and pauses to
// hold the target rate. Transport failures count as failed requests
// but never stop the loop. A separate one-shot mode hits each endpoint
// exactly once and reports per-endpoint pass/fail.
package loadgen
