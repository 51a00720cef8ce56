package queue

const minRingCapacity = 16

// ring is an unbounded FIFO of T backed by a power-of-two circular buffer.
// It is not safe for concurrent use; callers hold the owning queue's lock.
type ring[T any] struct {
	buf  []T
	head int
	size int
	mask int
}

func newRing[T any](capacity int) *ring[T] {
	capacity = nextPowerOfTwo(max(capacity, minRingCapacity))
	return &ring[T]{
		buf:  make([]T, capacity),
		mask: capacity - 1,
	}
}

func (r *ring[T]) len() int {
	return r.size
}

func (r *ring[T]) pushBack(v T) {
	if r.size == len(r.buf) {
		r.grow()
	}
	r.buf[(r.head+r.size)&r.mask] = v
	r.size++
}

func (r *ring[T]) popFront() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}

	v := r.buf[r.head]
	// Release the reference so the job's captured state can be collected.
	r.buf[r.head] = zero
	r.head = (r.head + 1) & r.mask
	r.size--
	return v, true
}

// grow doubles the buffer, unwrapping the contents so head starts at 0.
func (r *ring[T]) grow() {
	buf := make([]T, len(r.buf)*2)
	n := copy(buf, r.buf[r.head:])
	copy(buf[n:], r.buf[:r.head])
	r.buf = buf
	r.head = 0
	r.mask = len(buf) - 1
	debugLog("ring grown to %d slots (%d queued)", len(buf), r.size)
}

// nextPowerOfTwo returns the next power of 2 >= n
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	if n&(n-1) == 0 {
		return n
	}

	power := 1
	for power < n {
		power *= 2
	}
	return power
}
