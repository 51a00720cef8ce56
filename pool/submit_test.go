package pool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

func TestPool_RunsEveryJobExactlyOnce(t *testing.T) {
	runStrategyTest(t, func(t *testing.T, s strategyConfig) {
		const k = 1000
		p := New(4, s.opts...)

		var runs [k]atomic.Int32
		for i := range k {
			if err := p.ExecuteFunc(func() { runs[i].Add(1) }); err != nil {
				t.Fatalf("execute %d: %v", i, err)
			}
		}

		shutdownOrFail(t, p)

		for i := range runs {
			if n := runs[i].Load(); n != 1 {
				t.Fatalf("job %d ran %d times", i, n)
			}
		}

		stats := p.Stats()
		if stats.Submitted != k || stats.Completed != k {
			t.Errorf("expected %d submitted/completed, got %d/%d", k, stats.Submitted, stats.Completed)
		}
		if stats.Pending != 0 || stats.Running() != 0 {
			t.Errorf("expected nothing pending or running, got %d/%d", stats.Pending, stats.Running())
		}
	})
}

func TestPool_ConcurrentProducers(t *testing.T) {
	runStrategyTest(t, func(t *testing.T, s strategyConfig) {
		const producers, perProducer = 8, 250
		p := New(4, s.opts...)

		var counter atomic.Int64
		var g errgroup.Group
		for range producers {
			g.Go(func() error {
				for range perProducer {
					if err := p.ExecuteFunc(func() { counter.Add(1) }); err != nil {
						return err
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			t.Fatalf("producer failed: %v", err)
		}

		shutdownOrFail(t, p)

		if got := counter.Load(); got != producers*perProducer {
			t.Errorf("expected %d executions, got %d", producers*perProducer, got)
		}
	})
}

func TestPool_FIFOWithSingleWorker(t *testing.T) {
	runStrategyTest(t, func(t *testing.T, s strategyConfig) {
		const k = 200
		p := New(1, s.opts...)

		var (
			mu      sync.Mutex
			order   []int
			running atomic.Bool
			overlap atomic.Bool
		)
		for i := range k {
			_ = p.ExecuteFunc(func() {
				if !running.CompareAndSwap(false, true) {
					overlap.Store(true)
				}
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				running.Store(false)
			})
		}

		shutdownOrFail(t, p)

		if overlap.Load() {
			t.Error("a job started before the previous one finished")
		}
		if len(order) != k {
			t.Fatalf("expected %d jobs, got %d", k, len(order))
		}
		for i, v := range order {
			if v != i {
				t.Fatalf("position %d ran job %d", i, v)
			}
		}
	})
}

func TestPool_PerProducerOrder(t *testing.T) {
	runStrategyTest(t, func(t *testing.T, s strategyConfig) {
		const producers, perProducer = 4, 100
		p := New(1, s.opts...)

		var mu sync.Mutex
		seen := make(map[int][]int)

		var g errgroup.Group
		for prod := range producers {
			g.Go(func() error {
				for i := range perProducer {
					err := p.ExecuteFunc(func() {
						mu.Lock()
						seen[prod] = append(seen[prod], i)
						mu.Unlock()
					})
					if err != nil {
						return err
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			t.Fatal(err)
		}
		shutdownOrFail(t, p)

		for prod, got := range seen {
			for i, v := range got {
				if v != i {
					t.Fatalf("producer %d: position %d ran job %d", prod, i, v)
				}
			}
		}
	})
}

func TestPool_LongJobDoesNotBlockOtherWorkers(t *testing.T) {
	runStrategyTest(t, func(t *testing.T, s strategyConfig) {
		p := New(2, s.opts...)
		defer p.Close()

		// The first job only finishes once the second has run on the other worker.
		second := make(chan struct{})
		firstDone := make(chan struct{})
		_ = p.ExecuteFunc(func() {
			defer close(firstDone)
			<-second
		})
		_ = p.ExecuteFunc(func() { close(second) })

		select {
		case <-firstDone:
		case <-time.After(5 * time.Second):
			t.Fatal("second job never ran while the first was in progress")
		}
	})
}

func TestPool_ScenarioHundredJobsFourWorkers(t *testing.T) {
	runStrategyTest(t, func(t *testing.T, s strategyConfig) {
		p := New(4, s.opts...)

		var counter atomic.Int64
		for range 100 {
			_ = p.ExecuteFunc(func() { counter.Add(1) })
		}

		if err := p.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}
		if got := counter.Load(); got != 100 {
			t.Errorf("expected counter 100, got %d", got)
		}
		assertAllTerminated(t, p)
	})
}

func TestPool_ExecuteAfterShutdown(t *testing.T) {
	runStrategyTest(t, func(t *testing.T, s strategyConfig) {
		p := New(2, s.opts...)
		shutdownOrFail(t, p)

		var ran atomic.Bool
		err := p.ExecuteFunc(func() { ran.Store(true) })
		if !errors.Is(err, ErrPoolClosed) {
			t.Fatalf("expected ErrPoolClosed, got %v", err)
		}

		time.Sleep(10 * time.Millisecond)
		if ran.Load() {
			t.Error("rejected job must never run")
		}

		stats := p.Stats()
		if stats.Rejected != 1 || stats.Submitted != 0 {
			t.Errorf("expected 1 rejected and 0 submitted, got %d/%d", stats.Rejected, stats.Submitted)
		}
	})
}

func TestPool_ExecuteRacingShutdown(t *testing.T) {
	runStrategyTest(t, func(t *testing.T, s strategyConfig) {
		p := New(4, s.opts...)

		var accepted, ran atomic.Int64
		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 500 {
					if err := p.ExecuteFunc(func() { ran.Add(1) }); err == nil {
						accepted.Add(1)
					} else if !errors.Is(err, ErrPoolClosed) {
						t.Errorf("unexpected error: %v", err)
					}
				}
			}()
		}

		time.Sleep(time.Millisecond)
		shutdownOrFail(t, p)
		wg.Wait()

		if accepted.Load() != ran.Load() {
			t.Errorf("accepted %d jobs but ran %d", accepted.Load(), ran.Load())
		}
		stats := p.Stats()
		if stats.Submitted+stats.Rejected != 2000 {
			t.Errorf("expected 2000 submit attempts, got %d+%d", stats.Submitted, stats.Rejected)
		}
	})
}

type countingJob struct {
	n *atomic.Int32
}

func (j countingJob) Run() { j.n.Add(1) }

func TestPool_ExecuteJobInterface(t *testing.T) {
	p := New(2)
	var n atomic.Int32
	for range 5 {
		if err := p.Execute(countingJob{n: &n}); err != nil {
			t.Fatal(err)
		}
	}
	shutdownOrFail(t, p)

	if n.Load() != 5 {
		t.Errorf("expected 5 runs, got %d", n.Load())
	}
}

func TestPool_NilJob(t *testing.T) {
	p := New(1)
	defer p.Close()

	var nilFunc JobFunc
	tests := []struct {
		name string
		call func() error
	}{
		{"nil job", func() error { return p.Execute(nil) }},
		{"nil JobFunc", func() error { return p.Execute(nilFunc) }},
		{"nil closure", func() error { return p.ExecuteFunc(nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrNilJob) {
				t.Errorf("expected ErrNilJob, got %v", err)
			}
		})
	}

	if s := p.Stats(); s.Submitted != 0 || s.Rejected != 0 {
		t.Errorf("nil jobs should not be counted, got %+v", s)
	}
}
