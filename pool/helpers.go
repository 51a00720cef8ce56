package pool

import (
	"errors"
	"time"
)

var (
	// ErrPoolClosed is returned by Execute once shutdown has begun, and by a
	// second call to Shutdown or Close.
	ErrPoolClosed = errors.New("pool is closed")

	// ErrShutdownTimeout is returned by Shutdown when workers are still
	// draining after the timeout. They keep draining in the background.
	ErrShutdownTimeout = errors.New("error in shutting down: timeout reached")

	// ErrNilJob is returned by Execute for a nil job.
	ErrNilJob = errors.New("job is nil")
)

// waitUntil blocks until either the done channel is closed or the timeout is reached.
// A non-positive timeout waits forever.
func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-d:
		return nil
	case <-timer.C:
		return ErrShutdownTimeout
	}
}

// isNilJob catches both a nil interface and a nil JobFunc wrapped in one.
func isNilJob(job Job) bool {
	if job == nil {
		return true
	}
	f, ok := job.(JobFunc)
	return ok && f == nil
}
