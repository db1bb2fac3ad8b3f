package simulate

import "errors"

// FailureKind classifies the expected, deliberately-triggered failures
// of the simulated operations.
type FailureKind string

const (
	// KindNotFound is returned when looking up the sentinel user ID.
	KindNotFound FailureKind = "not_found"

	// KindInternal is the randomized failure injection.
	KindInternal FailureKind = "internal"
)

// Failure is a typed failure outcome of a simulated operation.
// Failures are ordinary results surfaced with status codes and
// messages, never crashes.
type Failure struct {
	Kind    FailureKind
	Message string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return f.Message
}

// NotFoundError returns a NotFound failure with the given message.
func NotFoundError(message string) *Failure {
	return &Failure{Kind: KindNotFound, Message: message}
}

// InternalError returns an Internal failure with the given message.
func InternalError(message string) *Failure {
	return &Failure{Kind: KindInternal, Message: message}
}

// AsFailure unwraps err into a *Failure if it is one.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
