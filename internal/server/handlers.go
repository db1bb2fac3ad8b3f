package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/obskit/loadpulse/internal/instrumentation"
	"github.com/obskit/loadpulse/internal/logging"
	"github.com/obskit/loadpulse/internal/simulate"
)

// Route templates used as the endpoint label of app_requests_total.
// Parameterized routes use the template, not the raw path, so label
// cardinality stays bounded no matter how many IDs are requested.
const (
	routeRoot          = "/"
	routeHealth        = "/health"
	routeUserByID      = "/api/users/{id}"
	routeUsers         = "/api/users"
	routeSimulateError = "/api/simulate-error"
)

// errorResponse carries a user-visible failure detail.
type errorResponse struct {
	Detail string `json:"detail"`
}

// healthResponse is the payload of GET /health.
type healthResponse struct {
	Status    string  `json:"status"`
	Timestamp float64 `json:"timestamp"`
}

// messageResponse is the payload of the plain message endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequest(r.Context(), http.MethodGet, routeRoot)

	writeJSON(w, http.StatusOK, messageResponse{
		Message: "Hello World! This is a loadpulse app with metrics.",
	})
}

// handleHealth returns a fixed status payload with a current timestamp.
// It simulates no work and opens no spans.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequest(r.Context(), http.MethodGet, routeHealth)

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: s.healthTimestamp(),
	})
}

func (s *Server) handleFetchUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.metrics.IncRequest(ctx, http.MethodGet, routeUserByID)

	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid user ID"})
		return
	}

	start := time.Now()
	ctx, span := instrumentation.StartRequestSpan(ctx, s.tracer, http.MethodGet, routeUserByID)
	defer span.End()

	user, opErr := s.ops.FetchUser(ctx, userID)

	// Elapsed wall time is recorded on success and failure alike, so
	// the histogram reflects every completed user operation.
	s.metrics.ObserveDuration(ctx, time.Since(start).Seconds())

	if opErr != nil {
		instrumentation.SetSpanError(span, opErr)
		s.writeFailure(w, r, opErr)
		return
	}

	instrumentation.SetSpanSuccess(span)
	slog.Debug("user fetched",
		logging.Operation("fetch_user"),
		logging.Status(logging.StatusSuccess),
		slog.String("trace", instrumentation.SpanContextString(ctx)),
	)
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.metrics.IncRequest(ctx, http.MethodPost, routeUsers)

	start := time.Now()
	ctx, span := instrumentation.StartRequestSpan(ctx, s.tracer, http.MethodPost, routeUsers)
	defer span.End()

	user, opErr := s.ops.CreateUser(ctx)

	s.metrics.ObserveDuration(ctx, time.Since(start).Seconds())

	if opErr != nil {
		instrumentation.SetSpanError(span, opErr)
		s.writeFailure(w, r, opErr)
		return
	}

	instrumentation.SetSpanSuccess(span)
	slog.Debug("user created",
		logging.Operation("create_user"),
		logging.Status(logging.StatusSuccess),
		slog.String("trace", instrumentation.SpanContextString(ctx)),
	)
	writeJSON(w, http.StatusOK, user)
}

// handleSimulateError fails roughly 30% of the time. The operation has
// no stages to trace and no latency to observe, so it participates
// only in the request counter.
func (s *Server) handleSimulateError(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.metrics.IncRequest(ctx, http.MethodGet, routeSimulateError)

	msg, err := s.ops.MaybeFail(ctx)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// writeFailure maps a typed failure to its HTTP status and detail
// body. Simulated failures are expected outcomes, logged at debug.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if failure, ok := simulate.AsFailure(err); ok {
		status := http.StatusInternalServerError
		if failure.Kind == simulate.KindNotFound {
			status = http.StatusNotFound
		}

		slog.Debug("simulated operation failed",
			logging.Method(r.Method),
			logging.Path(r.URL.Path),
			logging.Status(logging.StatusError),
			logging.Err(failure),
		)
		writeJSON(w, status, errorResponse{Detail: failure.Message})
		return
	}

	slog.Error("unexpected handler error",
		logging.Method(r.Method),
		logging.Path(r.URL.Path),
		logging.Err(err),
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", logging.Err(err))
	}
}
