package pool

import (
	"testing"
	"time"
)

// strategyConfig defines a test configuration for a dispatch strategy
type strategyConfig struct {
	name string
	opts []Option
}

// getAllStrategies returns every dispatch strategy with options suited to tests.
func getAllStrategies() []strategyConfig {
	return []strategyConfig{
		{
			name: "Blocking",
			opts: []Option{WithStrategy(StrategyBlocking)},
		},
		{
			name: "Polling",
			opts: []Option{
				WithStrategy(StrategyPolling),
				WithPollBackoff(BackoffExponential, 10*time.Microsecond, time.Millisecond),
			},
		},
		{
			name: "PollingSpin",
			opts: []Option{
				WithStrategy(StrategyPolling),
				WithPollBackoff(BackoffNone, 0, 0),
			},
		},
	}
}

func runStrategyTest(t *testing.T, testFunc func(t *testing.T, s strategyConfig), additionalOpts ...Option) {
	for _, s := range getAllStrategies() {
		s.opts = append(s.opts, additionalOpts...)
		t.Run(s.name, func(t *testing.T) {
			testFunc(t, s)
		})
	}
}

// shutdownOrFail shuts p down and fails the test if workers do not drain in time.
func shutdownOrFail(t *testing.T, p *Pool) {
	t.Helper()
	if err := p.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
}

func assertAllTerminated(t *testing.T, p *Pool) {
	t.Helper()

	select {
	case <-p.Done():
	default:
		t.Fatal("Done channel should be closed after shutdown")
	}

	for _, w := range p.Workers() {
		if w.State != WorkerTerminated {
			t.Errorf("worker %d is %v, want %v", w.ID, w.State, WorkerTerminated)
		}
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		default:
			t.Errorf("worker %d goroutine has not exited", w.id)
		}
	}
	if live := p.Stats().LiveWorkers; live != 0 {
		t.Errorf("expected 0 live workers, got %d", live)
	}
}
