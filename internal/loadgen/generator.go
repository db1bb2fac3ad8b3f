package loadgen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/obskit/loadpulse/internal/simulate"
)

const (
	// DefaultBaseURL targets a locally running service.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds each issued request.
	DefaultTimeout = 10 * time.Second

	// PingTimeout bounds the preflight reachability check.
	PingTimeout = 5 * time.Second

	// progressEvery controls how often a progress line is emitted.
	progressEvery = 10
)

// State is the generator lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// UnreachableError reports that the service could not be reached at
// all. It is the only condition the CLI treats as fatal.
type UnreachableError struct {
	BaseURL string
	Err     error
}

// Error implements the error interface.
func (e *UnreachableError) Error() string {
	return fmt.Sprintf("cannot reach service at %s: %v", e.BaseURL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// CheckResult is the outcome of one one-shot endpoint check.
type CheckResult struct {
	Request Request
	Status  int
	Err     error
	Success bool
}

// Config configures a Generator. Zero values fall back to defaults.
type Config struct {
	// BaseURL is the root URL of the service under load.
	BaseURL string

	// Timeout bounds each individual request.
	Timeout time.Duration

	// Out receives progress and summary output. Defaults to stdout.
	Out io.Writer

	// Rand selects catalog entries. Defaults to a time-seeded source;
	// tests inject a seeded one.
	Rand simulate.Rand
}

// sleepFunc pauses between requests, honoring cancellation.
type sleepFunc func(ctx context.Context, d time.Duration) error

// Generator issues paced traffic from a single sequential control
// loop. It is not safe for concurrent use; one run per Generator.
type Generator struct {
	baseURL string
	client  *http.Client
	out     io.Writer
	rng     simulate.Rand
	sleep   sleepFunc
	state   State
	stats   Stats
}

// New creates a Generator from the given configuration.
func New(cfg Config) *Generator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Rand == nil {
		cfg.Rand = simulate.NewRand()
	}

	return &Generator{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		out:     cfg.Out,
		rng:     cfg.Rand,
		sleep:   sleepContext,
	}
}

// State returns the generator lifecycle state.
func (g *Generator) State() State {
	return g.state
}

// Stats returns the statistics of the current or finished run.
func (g *Generator) Stats() Stats {
	return g.stats
}

// Ping verifies the service is reachable before a run. A response
// with any status counts as reachable; only transport failures do not.
func (g *Generator) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/health", nil)
	if err != nil {
		return &UnreachableError{BaseURL: g.baseURL, Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return &UnreachableError{BaseURL: g.baseURL, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(g.out, "warning: service returned status %d on /health\n", resp.StatusCode)
	}
	return nil
}

// Run generates traffic for the given duration at the given target
// rate. It transitions Idle to Running, then to Finished when the time
// budget is spent or ctx is cancelled. Individual request failures are
// counted, never fatal.
func (g *Generator) Run(ctx context.Context, duration time.Duration, rate float64) (Stats, error) {
	if g.state != StateIdle {
		return g.stats, fmt.Errorf("generator already %s", g.state)
	}
	if rate <= 0 {
		return g.stats, fmt.Errorf("rate must be positive, got %g", rate)
	}

	catalog := Catalog()
	pause := time.Duration(float64(time.Second) / rate)

	fmt.Fprintf(g.out, "Starting traffic generation for %s\n", duration)
	fmt.Fprintf(g.out, "Target: %.1f requests per second\n", rate)
	fmt.Fprintf(g.out, "Endpoints: %d different endpoints\n", len(catalog))
	fmt.Fprintln(g.out, strings.Repeat("-", 50))

	g.state = StateRunning
	g.stats = Stats{Started: time.Now()}

	for time.Since(g.stats.Started) < duration {
		entry := catalog[g.rng.Intn(len(catalog))]

		status, err := g.issue(ctx, entry)
		g.stats.TotalRequests++
		if err == nil && status < 400 {
			g.stats.SuccessfulRequests++
		}

		if g.stats.TotalRequests%progressEvery == 0 {
			g.progress()
		}

		if err := g.sleep(ctx, pause); err != nil {
			break
		}
	}

	g.stats.Finished = time.Now()
	g.state = StateFinished
	g.summary()

	return g.stats, nil
}

// CheckAll issues each verification endpoint exactly once, without
// pacing, and reports per-endpoint pass/fail.
func (g *Generator) CheckAll(ctx context.Context) []CheckResult {
	fmt.Fprintln(g.out, "Testing all endpoints...")

	checks := CheckCatalog()
	results := make([]CheckResult, 0, len(checks))
	for _, entry := range checks {
		status, err := g.issue(ctx, entry)
		result := CheckResult{
			Request: entry,
			Status:  status,
			Err:     err,
			Success: err == nil && status < 400,
		}
		results = append(results, result)

		mark := "ok  "
		if !result.Success {
			mark = "fail"
		}
		if err != nil {
			fmt.Fprintf(g.out, "%s %-4s %-20s -> %v\n", mark, entry.Method, entry.Path, err)
		} else {
			fmt.Fprintf(g.out, "%s %-4s %-20s -> %d\n", mark, entry.Method, entry.Path, status)
		}
	}
	return results
}

// issue performs one request and returns its status code. The body is
// drained so connections are reused.
func (g *Generator) issue(ctx context.Context, entry Request) (int, error) {
	req, err := http.NewRequestWithContext(ctx, entry.Method, g.baseURL+entry.Path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func (g *Generator) progress() {
	fmt.Fprintf(g.out, "%.1fs | %.1f req/s | %.1f%% success | total: %d\n",
		g.stats.Elapsed().Seconds(),
		g.stats.Rate(),
		g.stats.SuccessRate(),
		g.stats.TotalRequests,
	)
}

func (g *Generator) summary() {
	line := strings.Repeat("=", 50)
	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, line)
	fmt.Fprintln(g.out, "FINAL STATISTICS")
	fmt.Fprintln(g.out, line)
	fmt.Fprintf(g.out, "Duration: %.1f seconds\n", g.stats.Elapsed().Seconds())
	fmt.Fprintf(g.out, "Total requests: %d\n", g.stats.TotalRequests)
	fmt.Fprintf(g.out, "Successful requests: %d\n", g.stats.SuccessfulRequests)
	fmt.Fprintf(g.out, "Failed requests: %d\n", g.stats.FailedRequests())
	fmt.Fprintf(g.out, "Success rate: %.1f%%\n", g.stats.SuccessRate())
	fmt.Fprintf(g.out, "Actual rate: %.1f requests/second\n", g.stats.Rate())
	fmt.Fprintln(g.out, line)
}

// sleepContext pauses for d, returning early with the context's error
// if the context is cancelled first.
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
