package analysis

// Status tags the result of an external-provider call so the orchestrator
// branches on data instead of intercepting panics.
type Status int

const (
	// StatusSuccess means the primary provider served the value.
	StatusSuccess Status = iota
	// StatusDegraded means a local fallback produced the value after the
	// provider failed.
	StatusDegraded
	// StatusUnavailable means the provider was never configured and the
	// fallback served the value directly.
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusDegraded:
		return "degraded"
	default:
		return "unavailable"
	}
}

// Outcome carries a usable value in every state; Reason is set when the
// value did not come from the primary provider.
type Outcome[T any] struct {
	Status Status
	Value  T
	Reason string
}

func Success[T any](value T) Outcome[T] {
	return Outcome[T]{Status: StatusSuccess, Value: value}
}

func Degraded[T any](value T, reason string) Outcome[T] {
	return Outcome[T]{Status: StatusDegraded, Value: value, Reason: reason}
}

func Unavailable[T any](value T, reason string) Outcome[T] {
	return Outcome[T]{Status: StatusUnavailable, Value: value, Reason: reason}
}
