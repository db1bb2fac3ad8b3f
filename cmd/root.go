package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/obskit/loadpulse/internal/logging"
)

// rootCmd represents the base command for the loadpulse application
var rootCmd = &cobra.Command{
	Use:   "loadpulse",
	Short: "Instrumented demo HTTP service and traffic generator",
	Long: `loadpulse is a small observability playground: an HTTP service whose
endpoints simulate latency and failures while emitting Prometheus
metrics and OpenTelemetry traces, plus a traffic generator that drives
rate-controlled load against it.

It can run as:
  - An instrumented HTTP service (serve)
  - A traffic generator against a running service (traffic)`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Setup(logLevel)
	},
}

// version will be set by main
var version = "dev"

var logLevel string

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "loadpulse version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newTrafficCmd())
	rootCmd.AddCommand(newVersionCmd())
}
