// Package metrics defines the Prometheus collectors for ingest cycles.
//
// Collectors are registered on the Registerer passed to NewIngest, so tests
// can use a private registry while the service uses prometheus.DefaultRegisterer:
//
//	m := metrics.NewIngest(prometheus.DefaultRegisterer)
//	m.ObserveCycle(metrics.ResultSuccess, time.Since(start))
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "feedme"

// Cycle results used as the result label.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Ingest holds the ingest cycle collectors.
type Ingest struct {
	// Cycles counts finished cycles by result.
	Cycles *prometheus.CounterVec

	// CycleDuration measures cycles end to end, fetch to continuation save.
	CycleDuration prometheus.Histogram

	// Entries counts reconciled entries by action (insert, update).
	Entries *prometheus.CounterVec

	// Unread is the unread count reported by the last successful cycle.
	Unread prometheus.Gauge

	// MarkAllRead counts cycles that staged the bulk Unread to Read transition.
	MarkAllRead prometheus.Counter

	// DateFallbacks counts entries whose publication date fell back to the clock.
	DateFallbacks prometheus.Counter

	// LastSuccess is the Unix time of the last successful cycle.
	LastSuccess prometheus.Gauge
}

// NewIngest creates and registers the ingest collectors on reg.
func NewIngest(reg prometheus.Registerer) *Ingest {
	factory := promauto.With(reg)

	return &Ingest{
		Cycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "cycles_total",
			Help:      "Ingest cycles by result.",
		}, []string{"result"}),
		CycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of ingest cycles.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 300},
		}),
		Entries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "entries_total",
			Help:      "Reconciled entries by action.",
		}, []string{"action"}),
		Unread: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "unread_entries",
			Help:      "Unread entries in the last reconciled page.",
		}),
		MarkAllRead: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "mark_all_read_total",
			Help:      "Cycles that marked every unread entry read.",
		}),
		DateFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "date_fallbacks_total",
			Help:      "Entries whose publication date could not be parsed.",
		}),
		LastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful ingest cycle.",
		}),
	}
}

// ObserveCycle records a finished cycle.
func (m *Ingest) ObserveCycle(result string, d time.Duration) {
	m.Cycles.WithLabelValues(result).Inc()
	m.CycleDuration.Observe(d.Seconds())
	if result == ResultSuccess {
		m.LastSuccess.SetToCurrentTime()
	}
}

// ObserveReconcile records the outcome of a committed reconcile pass.
func (m *Ingest) ObserveReconcile(inserted, updated, unread int, markedAllRead bool) {
	m.Entries.WithLabelValues("insert").Add(float64(inserted))
	m.Entries.WithLabelValues("update").Add(float64(updated))
	m.Unread.Set(float64(unread))
	if markedAllRead {
		m.MarkAllRead.Inc()
	}
}

// ObserveDateFallbacks records entries parsed with a substituted date.
func (m *Ingest) ObserveDateFallbacks(n int) {
	if n > 0 {
		m.DateFallbacks.Add(float64(n))
	}
}
