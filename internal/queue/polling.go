package queue

import "sync"

// Polling is an unbounded FIFO guarded by a single mutex and inspected by
// consumers that poll rather than wait.
//
// Unlike a bare locked deque it carries a stop flag: once closed, TryPop keeps
// handing out the backlog and then reports StatusClosed, so polling consumers
// have a termination signal.
type Polling[T any] struct {
	mu     sync.Mutex
	items  *ring[T]
	closed bool
}

// NewPolling creates an empty polling queue with an initial capacity hint.
func NewPolling[T any](capacity int) *Polling[T] {
	return &Polling[T]{items: newRing[T](capacity)}
}

// Push appends v at the tail.
func (q *Polling[T]) Push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.items.pushBack(v)
	return nil
}

// TryPop removes the head item if there is one. It never blocks beyond the
// short critical section.
func (q *Polling[T]) TryPop() (T, Status) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if v, ok := q.items.popFront(); ok {
		return v, StatusItem
	}

	var zero T
	if q.closed {
		return zero, StatusClosed
	}
	return zero, StatusEmpty
}

// Close sets the stop flag. Idempotent.
func (q *Polling[T]) Close() {
	q.mu.Lock()
	q.closed = true
	pending := q.items.len()
	q.mu.Unlock()
	debugLog("polling queue closed with %d pending", pending)
}

// Len returns the number of queued items.
func (q *Polling[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.len()
}
