package algorithms

import "time"

// IdleBackoff decides how long a polling worker sleeps after finding the
// queue empty.
//
// Instances may hold state and are owned by a single worker; they are not
// shared across goroutines.
type IdleBackoff interface {
	// NextDelay returns the pause after the given number of consecutive
	// empty polls. emptyPolls is 0-indexed (0 = first miss since the last job).
	NextDelay(emptyPolls int) time.Duration

	// Reset is called whenever the worker receives a job.
	Reset()
}
