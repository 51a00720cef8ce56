package pool

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/threadpool/internal/algorithms"
	"github.com/utkarsh5026/threadpool/internal/cpu"
)

// WorkerState is the lifecycle stage of a worker.
//
// A worker only moves forward: Running -> Draining -> Terminated.
type WorkerState int32

const (
	// WorkerRunning means the worker loop is active: waiting for a job or running one.
	WorkerRunning WorkerState = iota
	// WorkerDraining means the worker observed the closed queue and holds no job.
	WorkerDraining
	// WorkerTerminated means the worker goroutine has returned.
	WorkerTerminated
)

func (s WorkerState) String() string {
	switch s {
	case WorkerRunning:
		return "running"
	case WorkerDraining:
		return "draining"
	case WorkerTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// WorkerInfo is a point-in-time view of one worker.
type WorkerInfo struct {
	ID    int
	State WorkerState
	// CPU is the core the worker's thread is pinned to, or -1 when
	// WithThreadAffinity is off or pinning failed.
	CPU int
}

// worker is one long-lived goroutine that takes jobs from the dispatcher and
// runs them one at a time.
type worker struct {
	id    int
	pool  *Pool
	log   *slog.Logger
	idle  algorithms.IdleBackoff
	state atomic.Int32
	cpu   atomic.Int32
	done  chan struct{}
}

func newWorker(id int, p *Pool) *worker {
	w := &worker{
		id:   id,
		pool: p,
		log:  p.log.With(slog.Int("worker", id)),
		done: make(chan struct{}),
	}
	w.cpu.Store(-1)

	if p.cfg.strategy == StrategyPolling {
		w.idle = algorithms.NewIdleBackoff(p.cfg.backoffType, p.cfg.pollMinDelay, p.cfg.pollMaxDelay, p.cfg.pollJitter)
	}
	return w
}

// run is the worker loop. It returns only once the dispatcher reports the
// queue closed and drained. Job panics never escape it.
//
// A job that calls runtime.Goexit unwinds this goroutine past the loop; the
// deferred block then starts a fresh loop for the same worker so the pool
// keeps its size and queued jobs still run.
func (w *worker) run() error {
	drained := false
	defer func() {
		if !drained {
			w.log.Error("worker goroutine exited inside a job, restarting worker")
			w.pool.group.Go(w.run)
			return
		}
		w.pool.workerStopped()
		w.setState(WorkerTerminated)
		close(w.done)
	}()

	if w.pool.cfg.threadAffinity {
		binding, release := cpu.LockWorker(w.id)
		defer release()
		if binding.Err != nil {
			w.log.Debug("worker thread locked without cpu pinning", slog.Any("error", binding.Err))
		} else {
			w.cpu.Store(int32(binding.CPU)) // #nosec G115 -- cpu ids are small
		}
	}

	w.log.Debug("worker started")

	for {
		job, ok := w.pool.dispatch.next(w)
		if !ok {
			w.setState(WorkerDraining)
			w.log.Debug("worker observed closed queue")
			drained = true
			return nil
		}

		w.execute(job)
	}
}

// execute runs a single job with panic recovery. The queue lock is not held here.
func (w *worker) execute(job Job) {
	if lim := w.pool.cfg.rateLimiter; lim != nil {
		// Background context: an accepted job always runs, even during shutdown.
		if err := lim.Wait(context.Background()); err != nil {
			w.log.Warn("rate limiter wait failed", slog.Any("error", err))
		}
	}

	start := time.Now()
	returned := false
	defer func() {
		r := recover()
		switch {
		case r != nil:
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			w.recovered(r, buf[:n])
			w.pool.jobFinished(time.Since(start), jobPanicked)
		case !returned:
			// runtime.Goexit: recover sees nothing but Run never returned.
			w.log.Error("job exited its goroutine")
			w.pool.jobFinished(time.Since(start), jobAborted)
		default:
			w.pool.jobFinished(time.Since(start), jobCompleted)
		}
	}()

	job.Run()
	returned = true
}

func (w *worker) recovered(r any, stack []byte) {
	w.log.Error("job panicked",
		slog.String("panic", fmt.Sprint(r)),
		slog.String("stack", string(stack)),
	)

	if h := w.pool.cfg.panicHandler; h != nil {
		w.notify(h, r, stack)
	}
}

// notify calls the user's panic handler. A panic inside the handler is logged
// and dropped so the worker keeps serving.
func (w *worker) notify(h PanicHandler, r any, stack []byte) {
	defer func() {
		if hr := recover(); hr != nil {
			w.log.Error("panic handler panicked", slog.String("panic", fmt.Sprint(hr)))
		}
	}()
	h(w.id, r, stack)
}

func (w *worker) setState(s WorkerState) {
	w.state.Store(int32(s))
}

func (w *worker) info() WorkerInfo {
	return WorkerInfo{
		ID:    w.id,
		State: WorkerState(w.state.Load()),
		CPU:   int(w.cpu.Load()),
	}
}
