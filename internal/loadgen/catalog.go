package loadgen

import "net/http"

// Request identifies one catalog entry to issue against the service.
type Request struct {
	Method string
	Path   string
}

// Catalog returns the fixed traffic mix. The 404 user and the
// simulate-error endpoint are included deliberately so generated
// traffic produces a realistic share of failures.
func Catalog() []Request {
	return []Request{
		{Method: http.MethodGet, Path: "/"},
		{Method: http.MethodGet, Path: "/health"},
		{Method: http.MethodGet, Path: "/api/users/123"},
		{Method: http.MethodGet, Path: "/api/users/456"},
		{Method: http.MethodGet, Path: "/api/users/789"},
		{Method: http.MethodGet, Path: "/api/users/404"},
		{Method: http.MethodPost, Path: "/api/users"},
		{Method: http.MethodGet, Path: "/api/simulate-error"},
	}
}

// CheckCatalog returns the endpoints hit by the one-shot verification
// pass, including the metrics exposition routes.
func CheckCatalog() []Request {
	return []Request{
		{Method: http.MethodGet, Path: "/"},
		{Method: http.MethodGet, Path: "/health"},
		{Method: http.MethodGet, Path: "/api/users/123"},
		{Method: http.MethodPost, Path: "/api/users"},
		{Method: http.MethodGet, Path: "/api/simulate-error"},
		{Method: http.MethodGet, Path: "/metrics"},
		{Method: http.MethodGet, Path: "/custom-metrics"},
	}
}
