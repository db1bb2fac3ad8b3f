package loadgen

import "time"

// Stats aggregates the outcome of a traffic run. The generator's
// control loop is the only writer; callers read a copy after the run.
type Stats struct {
	TotalRequests      int
	SuccessfulRequests int
	Started            time.Time
	Finished           time.Time
}

// FailedRequests returns the number of requests that did not succeed.
func (s Stats) FailedRequests() int {
	return s.TotalRequests - s.SuccessfulRequests
}

// Elapsed returns the wall time covered by the run. While the run is
// still in progress it measures up to now.
func (s Stats) Elapsed() time.Duration {
	if s.Finished.IsZero() {
		return time.Since(s.Started)
	}
	return s.Finished.Sub(s.Started)
}

// Rate returns the achieved request rate in requests per second.
func (s Stats) Rate() float64 {
	elapsed := s.Elapsed().Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.TotalRequests) / elapsed
}

// SuccessRate returns the success percentage, exactly
// (successful/total)*100, or 0 before any request was issued.
func (s Stats) SuccessRate() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.SuccessfulRequests) / float64(s.TotalRequests) * 100
}
