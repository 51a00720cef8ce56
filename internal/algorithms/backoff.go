package algorithms

import (
	"math/rand"
	"time"
)

// Shifts past this overflow int64 nanoseconds.
const maxShift = 62

// exponentialBackoff pauses minDelay * 2^emptyPolls, capped at maxDelay.
type exponentialBackoff struct {
	minDelay time.Duration
	maxDelay time.Duration
}

func newExponentialBackoff(minDelay, maxDelay time.Duration) *exponentialBackoff {
	return &exponentialBackoff{minDelay: minDelay, maxDelay: maxDelay}
}

func (eb *exponentialBackoff) NextDelay(emptyPolls int) time.Duration {
	return calcExponentialDelay(emptyPolls, eb.minDelay, eb.maxDelay)
}

func (eb *exponentialBackoff) Reset() {}

func calcExponentialDelay(emptyPolls int, minDelay, maxDelay time.Duration) time.Duration {
	if emptyPolls < 0 {
		return 0
	}

	if emptyPolls >= maxShift {
		return maxDelay
	}

	delay := time.Duration(int64(1)<<uint(emptyPolls)) * minDelay
	if delay > maxDelay || delay < 0 {
		return maxDelay
	}

	return delay
}

// jitteredBackoff scales the exponential pause by a random factor in
// [1-jitter, 1+jitter].
//
// With jitterFactor=0.1 a 1ms pause becomes anything between 900µs and 1.1ms.
type jitteredBackoff struct {
	minDelay, maxDelay time.Duration
	jitterFactor       float64
	rng                *rand.Rand
}

func newJitteredBackoff(minDelay, maxDelay time.Duration, jitterFactor float64) *jitteredBackoff {
	return &jitteredBackoff{
		minDelay:     minDelay,
		maxDelay:     maxDelay,
		jitterFactor: clamp(jitterFactor, 0, 1),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- jitter does not need crypto rand
	}
}

func (jb *jitteredBackoff) NextDelay(emptyPolls int) time.Duration {
	if emptyPolls < 0 {
		return 0
	}

	base := calcExponentialDelay(emptyPolls, jb.minDelay, jb.maxDelay)
	multiplier := 1.0 + (jb.rng.Float64()*2-1)*jb.jitterFactor

	return clamp(time.Duration(float64(base)*multiplier), 0, jb.maxDelay)
}

func (jb *jitteredBackoff) Reset() {}

// decorrelatedBackoff picks each pause uniformly from [minDelay, 3*previous],
// capped at maxDelay. Each pause depends on the last one rather than on the
// poll count, so idle workers drift apart.
type decorrelatedBackoff struct {
	minDelay  time.Duration
	maxDelay  time.Duration
	prevDelay time.Duration
	rng       *rand.Rand
}

func newDecorrelatedBackoff(minDelay, maxDelay time.Duration) *decorrelatedBackoff {
	return &decorrelatedBackoff{
		minDelay:  minDelay,
		maxDelay:  maxDelay,
		prevDelay: minDelay,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- jitter does not need crypto rand
	}
}

func (db *decorrelatedBackoff) NextDelay(emptyPolls int) time.Duration {
	if emptyPolls <= 0 {
		db.prevDelay = db.minDelay
		return db.minDelay
	}

	upper := min(time.Duration(float64(db.prevDelay)*3), db.maxDelay)
	span := upper - db.minDelay
	if span <= 0 {
		db.prevDelay = db.minDelay
		return db.minDelay
	}

	delay := db.minDelay + time.Duration(db.rng.Int63n(int64(span)))
	db.prevDelay = delay
	return delay
}

func (db *decorrelatedBackoff) Reset() {
	db.prevDelay = db.minDelay
}

// spinBackoff never sleeps.
type spinBackoff struct{}

func (spinBackoff) NextDelay(int) time.Duration { return 0 }

func (spinBackoff) Reset() {}

type number interface {
	~int | ~int64 | ~float64
}

func clamp[N number](v, lo, hi N) N {
	return max(lo, min(v, hi))
}
