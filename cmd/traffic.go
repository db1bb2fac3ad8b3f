package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/obskit/loadpulse/internal/loadgen"
)

func newTrafficCmd() *cobra.Command {
	var (
		baseURL        string
		duration       time.Duration
		rate           float64
		once           bool
		nonInteractive bool
	)

	cmd := &cobra.Command{
		Use:   "traffic",
		Short: "Generate traffic against a running loadpulse service",
		Long: `Drives load against a running loadpulse service.

By default an interactive menu offers a one-shot endpoint check and a
set of traffic presets. Use --non-interactive with --duration and
--rate for scripted runs, or --once for the endpoint check alone.

Simulated failures (404s, injected 500s) are part of the expected
traffic mix and never cause a non-zero exit; only an unreachable
service does.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if baseURL == "" {
				baseURL = os.Getenv("LOADPULSE_BASE_URL")
			}
			return runTraffic(cmd.InOrStdin(), cmd.OutOrStdout(),
				baseURL, duration, rate, once, nonInteractive)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "",
		"Base URL of the service (default \"http://localhost:8000\"). Can also use LOADPULSE_BASE_URL env var.")
	cmd.Flags().DurationVar(&duration, "duration", 60*time.Second,
		"How long to generate traffic (non-interactive mode)")
	cmd.Flags().Float64Var(&rate, "rate", 2,
		"Target requests per second (non-interactive mode)")
	cmd.Flags().BoolVar(&once, "once", false,
		"Hit every endpoint exactly once and exit")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false,
		"Skip the menu and use the duration/rate flags")

	return cmd
}

func runTraffic(in io.Reader, out io.Writer, baseURL string, duration time.Duration, rate float64, once, nonInteractive bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// One generator per run; a Generator is single-use.
	newGen := func() *loadgen.Generator {
		return loadgen.New(loadgen.Config{BaseURL: baseURL, Out: out})
	}

	// Preflight. An unreachable service is the only fatal outcome.
	if err := newGen().Ping(ctx); err != nil {
		fmt.Fprintln(out, err)
		fmt.Fprintln(out, "Make sure the service is running: loadpulse serve")
		return err
	}
	fmt.Fprintln(out, "Service is reachable.")

	switch {
	case once:
		newGen().CheckAll(ctx)
		return nil
	case nonInteractive:
		_, err := newGen().Run(ctx, duration, rate)
		return err
	}

	return runMenu(ctx, in, out, newGen)
}

// runMenu mirrors the interactive preset menu. Invalid input aborts
// the menu with a message but exits zero; only transport failures are
// treated as errors.
func runMenu(ctx context.Context, in io.Reader, out io.Writer, newGen func() *loadgen.Generator) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Choose an option:")
	fmt.Fprintln(out, "1. Test all endpoints once")
	fmt.Fprintln(out, "2. Generate light traffic (1 req/s for 30s)")
	fmt.Fprintln(out, "3. Generate moderate traffic (2 req/s for 60s)")
	fmt.Fprintln(out, "4. Generate heavy traffic (5 req/s for 120s)")
	fmt.Fprintln(out, "5. Custom traffic generation")

	scanner := bufio.NewScanner(in)
	choice := prompt(scanner, out, "\nEnter your choice (1-5): ")

	run := func(duration time.Duration, rate float64) {
		if _, err := newGen().Run(ctx, duration, rate); err != nil {
			fmt.Fprintln(out, err)
		}
	}

	switch choice {
	case "1":
		newGen().CheckAll(ctx)
	case "2":
		run(30*time.Second, 1)
	case "3":
		run(60*time.Second, 2)
	case "4":
		run(120*time.Second, 5)
	case "5":
		seconds, err := strconv.Atoi(prompt(scanner, out, "Duration in seconds: "))
		if err != nil || seconds <= 0 {
			fmt.Fprintln(out, "Invalid input. Please enter valid numbers.")
			return nil
		}
		customRate, err := strconv.ParseFloat(prompt(scanner, out, "Requests per second: "), 64)
		if err != nil || customRate <= 0 {
			fmt.Fprintln(out, "Invalid input. Please enter valid numbers.")
			return nil
		}
		run(time.Duration(seconds)*time.Second, customRate)
	default:
		fmt.Fprintln(out, "Invalid choice.")
	}

	return nil
}

func prompt(scanner *bufio.Scanner, out io.Writer, msg string) string {
	fmt.Fprint(out, msg)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
