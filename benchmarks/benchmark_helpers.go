// Package benchmarks compares the pool's dispatch strategies under
// different worker counts, producer counts and job sizes.
package benchmarks

import (
	"time"

	"github.com/utkarsh5026/threadpool/pool"
)

// strategyConfig defines a benchmark configuration for a dispatch strategy
type strategyConfig struct {
	name string
	opts []pool.Option
}

// getAllStrategies returns every dispatch strategy worth benchmarking.
func getAllStrategies() []strategyConfig {
	return []strategyConfig{
		{
			name: "Blocking",
			opts: []pool.Option{pool.WithStrategy(pool.StrategyBlocking)},
		},
		{
			name: "PollingJittered",
			opts: []pool.Option{
				pool.WithStrategy(pool.StrategyPolling),
				pool.WithPollBackoff(pool.BackoffJittered, 20*time.Microsecond, time.Millisecond),
			},
		},
		{
			name: "PollingSpin",
			opts: []pool.Option{
				pool.WithStrategy(pool.StrategyPolling),
				pool.WithPollBackoff(pool.BackoffNone, 0, 0),
			},
		},
	}
}

// cpuWork performs n iterations of cheap arithmetic and returns the result so
// the compiler cannot drop the loop.
func cpuWork(n int) int {
	x := 0
	for i := range n {
		x += i * i % 7
	}
	return x
}
