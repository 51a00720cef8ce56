package queue

import "sync"

// Blocking is an unbounded multi-producer multi-consumer FIFO whose consumers
// suspend while it is empty.
//
// Closing the queue is the "no more jobs" signal: Push starts failing, and
// every blocked or future Pop returns ErrClosed once the backlog is gone.
type Blocking[T any] struct {
	mu     sync.Mutex
	ready  *sync.Cond
	items  *ring[T]
	closed bool
}

// NewBlocking creates an empty blocking queue. capacity is only a sizing hint
// for the initial buffer; the queue grows without bound.
func NewBlocking[T any](capacity int) *Blocking[T] {
	q := &Blocking[T]{items: newRing[T](capacity)}
	q.ready = sync.NewCond(&q.mu)
	return q
}

// Push appends v at the tail. It never blocks on capacity.
func (q *Blocking[T]) Push(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items.pushBack(v)
	q.mu.Unlock()

	q.ready.Signal()
	return nil
}

// Pop removes and returns the head item, waiting for one if the queue is empty.
// It returns ErrClosed when the queue has been closed and fully drained.
func (q *Blocking[T]) Pop() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.len() == 0 && !q.closed {
		q.ready.Wait()
	}

	if v, ok := q.items.popFront(); ok {
		return v, nil
	}

	var zero T
	return zero, ErrClosed
}

// Close marks the queue closed and wakes every waiting consumer.
// Items already queued remain poppable. Close is idempotent.
func (q *Blocking[T]) Close() {
	q.mu.Lock()
	q.closed = true
	pending := q.items.len()
	q.mu.Unlock()
	debugLog("blocking queue closed with %d pending", pending)

	q.ready.Broadcast()
}

// Len returns the number of queued items.
func (q *Blocking[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.len()
}
