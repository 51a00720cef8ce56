// Package queue implements the unbounded FIFO job queues that sit between
// pool producers and workers.
//
// Two strategies share the same ordering and close semantics:
//
//   - Blocking: Pop suspends the caller on a condition variable until an item
//     arrives or the queue is closed and drained.
//   - Polling: TryPop never blocks; callers retry after an empty poll.
//
// Both hold their lock only while touching the buffer. Items are handed out
// exactly once, in insertion order.
package queue

import "errors"

var (
	// ErrClosed is returned by Push after Close, and by Pop once the queue
	// is closed and every item has been handed out.
	ErrClosed = errors.New("queue is closed")
)

// Status is the outcome of a non-blocking poll.
type Status int

const (
	// StatusItem means an item was returned.
	StatusItem Status = iota
	// StatusEmpty means nothing is queued right now but more may arrive.
	StatusEmpty
	// StatusClosed means the queue is closed and drained; nothing will ever arrive.
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusItem:
		return "item"
	case StatusEmpty:
		return "empty"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}
