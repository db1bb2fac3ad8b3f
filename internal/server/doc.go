// Package server implements the HTTP surface of the demo service.
//
// The server dispatches each route to a simulated backend operation,
// incrementing the request counter before the operation runs, opening a
// root request span for the user operations, mapping typed failures to
// HTTP status codes, and recording elapsed wall time into the request
// duration histogram. Prometheus exposition is served from the global
// registry on /metrics and /custom-metrics.
package server
