package pool

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/utkarsh5026/threadpool/internal/algorithms"
	"golang.org/x/time/rate"
)

// BackoffType selects the idle backoff used by polling workers.
type BackoffType = algorithms.BackoffType

const (
	BackoffExponential  = algorithms.BackoffExponential
	BackoffJittered     = algorithms.BackoffJittered
	BackoffDecorrelated = algorithms.BackoffDecorrelated
	BackoffNone         = algorithms.BackoffNone
)

const (
	defaultPollMinDelay = 50 * time.Microsecond
	defaultPollMaxDelay = 5 * time.Millisecond
	defaultPollJitter   = 0.2
	defaultPoolName     = "default"
)

// PanicHandler receives a recovered job panic together with the id of the
// worker that ran the job and the goroutine stack at the point of recovery.
type PanicHandler func(workerID int, recovered any, stack []byte)

// Option is a functional option for configuring the pool.
type Option func(*config)

type config struct {
	name          string
	strategy      Strategy
	queueCapacity int

	logger       *slog.Logger
	panicHandler PanicHandler

	rateLimiter    *rate.Limiter
	threadAffinity bool

	backoffType  BackoffType
	pollMinDelay time.Duration
	pollMaxDelay time.Duration
	pollJitter   float64

	registerer       prometheus.Registerer
	metricsNamespace string
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		name:         defaultPoolName,
		strategy:     StrategyBlocking,
		logger:       slog.New(slog.DiscardHandler),
		backoffType:  BackoffJittered,
		pollMinDelay: defaultPollMinDelay,
		pollMaxDelay: defaultPollMaxDelay,
		pollJitter:   defaultPollJitter,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithName sets the name attached to log records and metric labels.
// Empty names are ignored.
func WithName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithStrategy selects the dispatch strategy. Defaults to StrategyBlocking.
func WithStrategy(s Strategy) Option {
	return func(cfg *config) {
		if s == StrategyBlocking || s == StrategyPolling {
			cfg.strategy = s
		}
	}
}

// WithQueueCapacity sizes the initial queue buffer. The queue is unbounded
// either way; this only avoids early regrowth when a burst size is known.
func WithQueueCapacity(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.queueCapacity = n
		}
	}
}

// WithLogger sets the structured logger. By default the pool logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithPanicHandler registers a callback for jobs that panic. The handler runs
// on the worker goroutine, after the panic has been recovered and logged.
func WithPanicHandler(h PanicHandler) Option {
	return func(cfg *config) {
		cfg.panicHandler = h
	}
}

// WithRateLimit caps how many jobs may start per second across the whole
// pool, with the given burst. Non-positive values leave the pool unlimited.
//
// Example:
//
//	WithRateLimit(100, 10) // at most 100 job starts/sec, bursts of 10
func WithRateLimit(jobsPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if jobsPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(jobsPerSecond), burst)
		}
	}
}

// WithThreadAffinity locks every worker goroutine to its own OS thread for
// its whole life and, on Linux, pins that thread to CPU (id mod NumCPU).
func WithThreadAffinity() Option {
	return func(cfg *config) {
		cfg.threadAffinity = true
	}
}

// WithPollBackoff configures how polling workers pace themselves while the
// queue is empty. Only used with StrategyPolling. minDelay is the first pause
// after a miss; pauses grow towards maxDelay. BackoffNone busy-polls.
func WithPollBackoff(backoffType BackoffType, minDelay, maxDelay time.Duration) Option {
	return func(cfg *config) {
		cfg.backoffType = backoffType
		if minDelay > 0 {
			cfg.pollMinDelay = minDelay
		}
		if maxDelay > 0 {
			cfg.pollMaxDelay = maxDelay
		}
	}
}

// WithPollJitter sets the jitter factor (0.0 to 1.0) for BackoffJittered.
func WithPollJitter(factor float64) Option {
	return func(cfg *config) {
		if factor >= 0 && factor <= 1 {
			cfg.pollJitter = factor
		}
	}
}

// WithMetrics registers the pool's Prometheus collectors with reg under the
// given namespace. Every collector carries a constant "pool" label set from
// WithName. The collectors are unregistered once every worker has returned.
func WithMetrics(reg prometheus.Registerer, namespace string) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registerer = reg
			cfg.metricsNamespace = namespace
		}
	}
}
