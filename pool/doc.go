// Package pool provides a fixed-size worker pool for fire-and-forget jobs.
//
// A Pool owns N long-lived worker goroutines and one unbounded FIFO queue.
// Producers hand jobs to the pool with Execute; each idle worker takes the
// next job from the queue and runs it to completion before taking another.
// No job is run twice and no accepted job is dropped: Shutdown closes the
// queue, lets the workers drain every job already accepted, and waits for
// all of them to exit.
//
// # Basic Usage
//
//	p := pool.New(4)
//	defer p.Close()
//
//	for _, url := range urls {
//	    _ = p.ExecuteFunc(func() {
//	        fetch(url)
//	    })
//	}
//
// Close (or Shutdown) blocks until every accepted job has run.
//
// # Dispatch Strategies
//
// Two strategies implement the same queue contract:
//
//   - StrategyBlocking (default): idle workers sleep on a condition variable
//     and are woken by Execute or Shutdown.
//   - StrategyPolling: idle workers poll a mutex-guarded queue and back off
//     between empty polls (see WithPollBackoff). The queue carries a stop
//     flag, so polling workers drain and exit on Shutdown like blocking ones.
//
// Jobs from a single producer are dispatched in submission order. There is
// no ordering across producers beyond what the queue lock admits.
//
// # Configuration Options
//
//   - WithStrategy(s): choose the dispatch strategy
//   - WithQueueCapacity(n): initial queue buffer size (the queue still grows)
//   - WithLogger(l): structured logger for worker lifecycle and job panics
//   - WithPanicHandler(fn): callback for recovered job panics
//   - WithRateLimit(perSecond, burst): pace job starts across the pool
//   - WithThreadAffinity(): lock each worker to an OS thread pinned to a CPU
//   - WithPollBackoff(type, min, max): idle pacing for polling workers
//   - WithPollJitter(f): jitter factor for BackoffJittered
//   - WithMetrics(reg, namespace): export Prometheus metrics
//   - WithName(name): label used in logs and metrics
//
// # Error Handling
//
// Jobs are fire-and-forget: producers get no result and no error from the
// job itself. A job that panics is recovered inside its worker, logged with a
// stack trace and reported to the panic handler; the worker keeps serving.
// A job that calls runtime.Goexit is counted in Stats.Aborted and its worker
// is restarted.
//
// New panics when the worker count is not positive. Execute returns
// ErrPoolClosed once shutdown has begun, and the job is never run.
package pool
