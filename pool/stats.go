package pool

import "sync/atomic"

// Stats is a snapshot of pool counters. Fields are read independently, so a
// snapshot taken while jobs are in flight may be slightly inconsistent.
type Stats struct {
	Workers     int   // fixed worker count
	LiveWorkers int   // workers whose goroutine has not returned
	Submitted   int64 // jobs accepted by Execute
	Completed   int64 // jobs that returned normally
	Panicked    int64 // jobs whose panic was recovered
	Aborted     int64 // jobs that ended their goroutine with runtime.Goexit
	Rejected    int64 // Execute calls refused because the pool was closed
	Pending     int   // jobs queued but not yet taken by a worker
}

// Running returns the number of accepted jobs that are neither queued nor finished.
func (s Stats) Running() int64 {
	return s.Submitted - s.Completed - s.Panicked - s.Aborted - int64(s.Pending)
}

type counters struct {
	submitted   atomic.Int64
	completed   atomic.Int64
	panicked    atomic.Int64
	aborted     atomic.Int64
	rejected    atomic.Int64
	liveWorkers atomic.Int32
}

// jobOutcome is how a job left Run.
type jobOutcome int

const (
	jobCompleted jobOutcome = iota
	jobPanicked
	jobAborted
)
