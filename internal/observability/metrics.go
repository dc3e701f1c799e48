package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records service-level operation telemetry. Each module
// gets its own instance labeled with the module name; tests use NoOpMetrics.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
}

type promMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewOperationMetrics registers and returns prometheus-backed operation
// metrics for one module.
func NewOperationMetrics(reg prometheus.Registerer, module string) OperationMetrics {
	labels := prometheus.Labels{"module": module}
	m := &promMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "triptracker_operation_attempts_total",
			Help:        "Service operations attempted.",
			ConstLabels: labels,
		}, []string{"operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "triptracker_operation_successes_total",
			Help:        "Service operations that succeeded.",
			ConstLabels: labels,
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "triptracker_operation_failures_total",
			Help:        "Service operations that failed.",
			ConstLabels: labels,
		}, []string{"operation"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "triptracker_operation_duration_seconds",
			Help:        "Service operation latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations)
	return m
}

func (m *promMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.attempts.WithLabelValues(operation).Inc()
}

func (m *promMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.successes.WithLabelValues(operation).Inc()
}

func (m *promMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.failures.WithLabelValues(operation).Inc()
}

func (m *promMetrics) RecordOperationDuration(_ context.Context, operation string, d time.Duration) {
	m.durations.WithLabelValues(operation).Observe(d.Seconds())
}

// NoOpMetrics is the metrics implementation for tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string) {}

func (NoOpMetrics) RecordOperationSuccess(context.Context, string) {}

func (NoOpMetrics) RecordOperationFailure(context.Context, string) {}

func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
