package pool

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsSubsystem = "pool"

// metrics holds the pool's Prometheus collectors. A nil *metrics is valid and
// records nothing.
type metrics struct {
	registerer prometheus.Registerer
	registered []prometheus.Collector // Only what this pool owns in registerer

	jobsSubmitted prometheus.Counter
	jobsCompleted prometheus.Counter
	jobsPanicked  prometheus.Counter
	jobsAborted   prometheus.Counter
	jobsRejected  prometheus.Counter
	liveWorkers   prometheus.Gauge
	pendingJobs   prometheus.GaugeFunc
	jobDuration   prometheus.Histogram
}

func newMetrics(cfg *config, pending func() int) *metrics {
	labels := prometheus.Labels{"pool": cfg.name}
	ns := cfg.metricsNamespace

	m := &metrics{
		registerer: cfg.registerer,
		jobsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   metricsSubsystem,
			Name:        "jobs_submitted_total",
			Help:        "Total number of jobs accepted by the pool",
			ConstLabels: labels,
		}),
		jobsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   metricsSubsystem,
			Name:        "jobs_completed_total",
			Help:        "Total number of jobs that ran to completion",
			ConstLabels: labels,
		}),
		jobsPanicked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   metricsSubsystem,
			Name:        "jobs_panicked_total",
			Help:        "Total number of jobs whose panic was recovered by a worker",
			ConstLabels: labels,
		}),
		jobsAborted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   metricsSubsystem,
			Name:        "jobs_aborted_total",
			Help:        "Total number of jobs that exited their worker goroutine with runtime.Goexit",
			ConstLabels: labels,
		}),
		jobsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   metricsSubsystem,
			Name:        "jobs_rejected_total",
			Help:        "Total number of jobs rejected because the pool was closed",
			ConstLabels: labels,
		}),
		liveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   metricsSubsystem,
			Name:        "live_workers",
			Help:        "Number of worker goroutines that have not terminated",
			ConstLabels: labels,
		}),
		pendingJobs: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   metricsSubsystem,
			Name:        "pending_jobs",
			Help:        "Number of queued jobs not yet taken by a worker",
			ConstLabels: labels,
		}, func() float64 { return float64(pending()) }),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   ns,
			Subsystem:   metricsSubsystem,
			Name:        "job_duration_seconds",
			Help:        "Histogram of job run time",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}),
	}

	for _, c := range m.collectors() {
		if err := cfg.registerer.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				cfg.logger.Warn("metric already registered, pool metrics will not be exported",
					slog.String("pool", cfg.name), slog.Any("error", err))
				continue
			}
			cfg.logger.Error("failed to register metric",
				slog.String("pool", cfg.name), slog.Any("error", err))
			continue
		}
		m.registered = append(m.registered, c)
	}

	return m
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.jobsSubmitted,
		m.jobsCompleted,
		m.jobsPanicked,
		m.jobsAborted,
		m.jobsRejected,
		m.liveWorkers,
		m.pendingJobs,
		m.jobDuration,
	}
}

// unregister removes this pool's collectors so a later pool with the same
// name can register its own.
func (m *metrics) unregister() {
	for _, c := range m.registered {
		m.registerer.Unregister(c)
	}
	m.registered = nil
}

func (m *metrics) submitted() {
	if m != nil {
		m.jobsSubmitted.Inc()
	}
}

func (m *metrics) rejected() {
	if m != nil {
		m.jobsRejected.Inc()
	}
}

func (m *metrics) finished(d time.Duration, o jobOutcome) {
	if m == nil {
		return
	}
	m.jobDuration.Observe(d.Seconds())
	switch o {
	case jobPanicked:
		m.jobsPanicked.Inc()
	case jobAborted:
		m.jobsAborted.Inc()
	default:
		m.jobsCompleted.Inc()
	}
}

func (m *metrics) workerDelta(delta float64) {
	if m != nil {
		m.liveWorkers.Add(delta)
	}
}
