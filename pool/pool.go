package pool

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/threadpool/internal/queue"
	"golang.org/x/sync/errgroup"
)

// Pool is a fixed set of workers fed from one unbounded FIFO job queue.
//
// A Pool is safe for concurrent use. Execute may be called from any number
// of goroutines; Shutdown (or Close) is called once by the owner.
type Pool struct {
	size     int
	cfg      *config
	log      *slog.Logger
	dispatch dispatcher
	workers  []*worker
	group    errgroup.Group // Worker goroutines, including restarted ones

	closed  atomic.Bool
	done    chan struct{} // Closed when every worker has returned
	stats   counters
	metrics *metrics
}

// New creates a pool with size workers and starts them immediately.
//
// New panics if size is not positive: a pool without workers would accept
// jobs that can never run.
//
// Example:
//
//	p := pool.New(8, pool.WithLogger(logger))
//	defer p.Close()
//	_ = p.ExecuteFunc(func() { fmt.Println("hello from a worker") })
func New(size int, opts ...Option) *Pool {
	if size <= 0 {
		panic(fmt.Sprintf("pool: worker count must be positive, got %d", size))
	}

	cfg := newConfig(opts...)
	p := &Pool{
		size:     size,
		cfg:      cfg,
		log:      cfg.logger.With(slog.String("pool", cfg.name)),
		dispatch: newDispatcher(cfg),
		workers:  make([]*worker, size),
		done:     make(chan struct{}),
	}

	if cfg.registerer != nil {
		p.metrics = newMetrics(cfg, p.dispatch.pending)
	}

	for id := range size {
		w := newWorker(id, p)
		p.workers[id] = w
		p.workerStarted()
		p.group.Go(w.run)
	}

	go func() {
		_ = p.group.Wait()
		if p.metrics != nil {
			p.metrics.unregister()
		}
		close(p.done)
	}()

	p.log.Debug("pool started", slog.Int("workers", size), slog.String("strategy", cfg.strategy.String()))
	return p
}

// Execute enqueues job and returns immediately. It never blocks on queue
// capacity and gives no feedback about when or whether the job ran.
//
// Once Shutdown has begun Execute returns ErrPoolClosed and the job is
// discarded without running. A nil job returns ErrNilJob.
func (p *Pool) Execute(job Job) error {
	if isNilJob(job) {
		return ErrNilJob
	}

	// Count before the push so a fast worker can never make Completed exceed Submitted.
	p.stats.submitted.Add(1)
	if err := p.dispatch.submit(job); err != nil {
		p.stats.submitted.Add(-1)
		p.stats.rejected.Add(1)
		p.metrics.rejected()
		if errors.Is(err, queue.ErrClosed) {
			return ErrPoolClosed
		}
		return err
	}

	p.metrics.submitted()
	return nil
}

// ExecuteFunc is Execute for a plain closure.
func (p *Pool) ExecuteFunc(fn func()) error {
	if fn == nil {
		return ErrNilJob
	}
	return p.Execute(JobFunc(fn))
}

// Shutdown stops the pool in two phases: it closes the queue so no new jobs
// are accepted and idle workers wake up, then waits for every worker to
// finish the jobs already accepted and exit.
//
// Parameters:
//   - timeout: Maximum duration to wait for the workers (0 = wait forever)
//
// Returns:
//   - error: ErrPoolClosed if shutdown already began, ErrShutdownTimeout if
//     workers were still draining when the timeout expired
//
// Shutdown must not be called from inside a job: the calling worker would
// wait for itself.
func (p *Pool) Shutdown(timeout time.Duration) error {
	if !p.closed.CompareAndSwap(false, true) {
		return ErrPoolClosed
	}

	p.log.Debug("pool shutting down", slog.Int("pending", p.dispatch.pending()))
	p.dispatch.close()

	if err := waitUntil(p.done, timeout); err != nil {
		p.log.Warn("pool shutdown timed out", slog.Duration("timeout", timeout),
			slog.Int("pending", p.dispatch.pending()))
		return err
	}

	p.log.Debug("pool stopped",
		slog.Int64("completed", p.stats.completed.Load()),
		slog.Int64("panicked", p.stats.panicked.Load()),
		slog.Int64("aborted", p.stats.aborted.Load()),
	)
	return nil
}

// Close shuts the pool down and waits without a deadline. It makes the pool
// usable with defer and as an io.Closer.
func (p *Pool) Close() error {
	return p.Shutdown(0)
}

// Done returns a channel that is closed once every worker has terminated.
func (p *Pool) Done() <-chan struct{} {
	return p.done
}

// Size returns the fixed number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Workers returns a snapshot of every worker, ordered by id.
func (p *Pool) Workers() []WorkerInfo {
	infos := make([]WorkerInfo, len(p.workers))
	for i, w := range p.workers {
		infos[i] = w.info()
	}
	return infos
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:     p.size,
		LiveWorkers: int(p.stats.liveWorkers.Load()),
		Submitted:   p.stats.submitted.Load(),
		Completed:   p.stats.completed.Load(),
		Panicked:    p.stats.panicked.Load(),
		Aborted:     p.stats.aborted.Load(),
		Rejected:    p.stats.rejected.Load(),
		Pending:     p.dispatch.pending(),
	}
}

func (p *Pool) workerStarted() {
	p.stats.liveWorkers.Add(1)
	p.metrics.workerDelta(1)
}

func (p *Pool) workerStopped() {
	p.stats.liveWorkers.Add(-1)
	p.metrics.workerDelta(-1)
}

func (p *Pool) jobFinished(d time.Duration, o jobOutcome) {
	switch o {
	case jobPanicked:
		p.stats.panicked.Add(1)
	case jobAborted:
		p.stats.aborted.Add(1)
	default:
		p.stats.completed.Add(1)
	}
	p.metrics.finished(d, o)
}
