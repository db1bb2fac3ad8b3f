package server

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/obskit/loadpulse/internal/instrumentation"
	"github.com/obskit/loadpulse/internal/simulate"
)

// Server is the demo HTTP service. All observability flows through the
// injected instrumentation provider; tests create fresh providers for
// isolation.
type Server struct {
	config  Config
	metrics *instrumentation.Metrics
	tracer  trace.Tracer
	ops     *simulate.Ops

	httpServer *http.Server

	// Wall clocks can step backwards; the health timestamp is kept
	// strictly increasing under this lock.
	tsMu   sync.Mutex
	lastTS float64
}

// New creates a server serving the demo routes with the given
// instrumentation provider and simulated operations.
func New(config Config, provider *instrumentation.Provider, ops *simulate.Ops) *Server {
	return &Server{
		config:  config,
		metrics: provider.Metrics(),
		tracer:  provider.Tracer(instrumentation.TracerName),
		ops:     ops,
	}
}

// Handler builds the route table. Exposed so tests can drive the full
// stack through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/users/{id}", s.handleFetchUser)
	mux.HandleFunc("POST /api/users", s.handleCreateUser)
	mux.HandleFunc("GET /api/simulate-error", s.handleSimulateError)

	// The OpenTelemetry prometheus exporter registers metrics to the
	// global Prometheus registry, which promhttp.Handler() exposes.
	// /custom-metrics mirrors /metrics for dashboards that scrape the
	// application path rather than the conventional one.
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /custom-metrics", promhttp.Handler())

	return s.withRequestID(mux)
}

// Start starts the HTTP server in a blocking manner.
// Call this in a goroutine if you need non-blocking operation.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	slog.Info("starting http server", "addr", s.config.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server, draining in-flight
// requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		slog.Info("shutting down http server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Addr returns the configured bind address.
func (s *Server) Addr() string {
	return s.config.Addr
}

// healthTimestamp returns the current time as epoch seconds,
// guaranteed strictly greater than any previously returned value.
func (s *Server) healthTimestamp() float64 {
	s.tsMu.Lock()
	defer s.tsMu.Unlock()

	// At epoch-seconds magnitude a float64 ULP is ~240ns, so adding a
	// fixed nanosecond epsilon would round away. Nextafter always
	// yields the next representable value.
	ts := float64(time.Now().UnixNano()) / float64(time.Second)
	if ts <= s.lastTS {
		ts = math.Nextafter(s.lastTS, math.MaxFloat64)
	}
	s.lastTS = ts
	return ts
}
