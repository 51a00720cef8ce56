package pool

import (
	"runtime"
	"time"

	"github.com/utkarsh5026/threadpool/internal/queue"
)

// dispatcher is the job queue as seen by the pool and its workers.
type dispatcher interface {
	// submit enqueues a job at the tail. It fails only after close.
	submit(job Job) error

	// next hands the calling worker the next job, waiting as the strategy
	// dictates. ok is false once the queue is closed and drained.
	next(w *worker) (job Job, ok bool)

	// close is the "no more jobs" signal. Jobs already queued stay available.
	close()

	// pending returns the number of queued, not yet dequeued jobs.
	pending() int
}

func newDispatcher(cfg *config) dispatcher {
	switch cfg.strategy {
	case StrategyPolling:
		return &pollingDispatcher{q: queue.NewPolling[Job](cfg.queueCapacity)}
	default:
		return &blockingDispatcher{q: queue.NewBlocking[Job](cfg.queueCapacity)}
	}
}

// blockingDispatcher parks idle workers on the queue's condition variable.
type blockingDispatcher struct {
	q *queue.Blocking[Job]
}

func (d *blockingDispatcher) submit(job Job) error {
	return d.q.Push(job)
}

func (d *blockingDispatcher) next(*worker) (Job, bool) {
	job, err := d.q.Pop()
	if err != nil {
		return nil, false
	}
	return job, true
}

func (d *blockingDispatcher) close() {
	d.q.Close()
}

func (d *blockingDispatcher) pending() int {
	return d.q.Len()
}

// pollingDispatcher has idle workers re-check the queue after a backoff pause.
// The queue's stop flag gives them a termination signal.
type pollingDispatcher struct {
	q *queue.Polling[Job]
}

func (d *pollingDispatcher) submit(job Job) error {
	return d.q.Push(job)
}

func (d *pollingDispatcher) next(w *worker) (Job, bool) {
	for misses := 0; ; misses++ {
		job, st := d.q.TryPop()
		switch st {
		case queue.StatusItem:
			w.idle.Reset()
			return job, true
		case queue.StatusClosed:
			return nil, false
		}

		if delay := w.idle.NextDelay(misses); delay > 0 {
			time.Sleep(delay)
		} else {
			runtime.Gosched()
		}
	}
}

func (d *pollingDispatcher) close() {
	d.q.Close()
}

func (d *pollingDispatcher) pending() int {
	return d.q.Len()
}
