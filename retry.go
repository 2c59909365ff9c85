package docsearch

import "time"

// FailureKind classifies a failed inference attempt.
type FailureKind int

// FailureKind constants.
const (
	// FailureTransport is a network, timeout or undecodable-envelope failure.
	// It is the only retryable kind.
	FailureTransport FailureKind = iota + 1

	// FailureEndpoint is a non-success status reported by the endpoint.
	FailureEndpoint

	// FailureMalformed is a success response without a usable answer.
	FailureMalformed
)

// String returns the kind name used in logs.
func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureEndpoint:
		return "endpoint"
	case FailureMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Retryable reports whether an attempt that failed this way may be repeated.
func (k FailureKind) Retryable() bool {
	return k == FailureTransport
}

// RetryPolicy bounds the attempts made for a single inference call.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the wait after the first failed attempt.
	BaseDelay time.Duration

	// Multiplier scales the delay after each further failure.
	Multiplier float64
}

// DefaultRetryPolicy returns 3 attempts with 1s and 2s backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		Multiplier:  2,
	}
}

// Next decides what follows a failed attempt. attempt is zero-based.
// It returns the delay before the next attempt and true, or false when the
// failure is terminal or the attempt budget is spent.
func (p RetryPolicy) Next(attempt int, kind FailureKind) (time.Duration, bool) {
	if !kind.Retryable() {
		return 0, false
	}
	if attempt+1 >= p.MaxAttempts {
		return 0, false
	}
	return p.delay(attempt), true
}

// Delays returns the backoff sequence for an attempt budget that is spent
// entirely on retryable failures.
func (p RetryPolicy) Delays() []time.Duration {
	var delays []time.Duration
	for attempt := 0; attempt+1 < p.MaxAttempts; attempt++ {
		delays = append(delays, p.delay(attempt))
	}
	return delays
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	multiplier := p.Multiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	d := float64(p.BaseDelay)
	for i := 0; i < attempt; i++ {
		d *= multiplier
	}
	return time.Duration(d)
}
