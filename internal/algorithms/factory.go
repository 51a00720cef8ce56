package algorithms

import "time"

// BackoffType selects the idle backoff algorithm used by polling workers.
type BackoffType int

const (
	// BackoffExponential doubles the pause on every empty poll. NewIdleBackoff
	// falls back to it for unknown types.
	BackoffExponential BackoffType = iota
	// BackoffJittered adds random jitter so idle workers don't poll in lockstep.
	// It is the pool's default.
	BackoffJittered
	// BackoffDecorrelated uses decorrelated jitter.
	BackoffDecorrelated
	// BackoffNone never sleeps; the worker only yields the processor between polls.
	BackoffNone
)

func (b BackoffType) String() string {
	switch b {
	case BackoffExponential:
		return "exponential"
	case BackoffJittered:
		return "jittered"
	case BackoffDecorrelated:
		return "decorrelated"
	case BackoffNone:
		return "none"
	default:
		return "unknown"
	}
}

// NewIdleBackoff builds a fresh backoff instance. Call it once per worker.
func NewIdleBackoff(
	backoffType BackoffType,
	minDelay, maxDelay time.Duration,
	jitterFactor float64,
) IdleBackoff {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}

	switch backoffType {
	case BackoffJittered:
		return newJitteredBackoff(minDelay, maxDelay, jitterFactor)

	case BackoffDecorrelated:
		return newDecorrelatedBackoff(minDelay, maxDelay)

	case BackoffNone:
		return spinBackoff{}

	default:
		return newExponentialBackoff(minDelay, maxDelay)
	}
}
