// Package cmd implements the loadpulse command line interface.
//
// The CLI has two main modes: "serve" runs the instrumented demo HTTP
// service, and "traffic" drives load against a running instance, either
// through an interactive menu or via flags.
package cmd
