// Package logging provides slog helpers for consistent structured
// logging across the loadpulse service and traffic generator.
//
// It defines the common attribute keys (operation, method, path,
// status, duration, error) and small constructors for them so that
// log lines stay queryable and uniformly named.
package logging
