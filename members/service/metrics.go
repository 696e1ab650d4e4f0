package service

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

const metricsNamespace = "members_sync"

type Metrics struct {
	runs         *prometheus.CounterVec
	records      *prometheus.CounterVec
	events       prometheus.Counter
	degradations *prometheus.CounterVec
	watermark    prometheus.Gauge
	duration     *prometheus.HistogramVec
}

// NewMetrics creates the sync metrics and registers them on reg. Metrics
// registered earlier on reg are reused.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Sync runs by effective mode and result.",
		}, []string{"mode", "result"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "records_total",
			Help:      "Remote records by outcome.",
		}, []string{"outcome"}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "activity_events_total",
			Help:      "Activity events written.",
		}),
		degradations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fetch_degradations_total",
			Help:      "Runs whose remote query had to be degraded, by level.",
		}, []string{"level"}),
		watermark: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "watermark_timestamp_seconds",
			Help:      "Watermark committed by the last successful run.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of sync runs.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"mode"}),
	}

	m.runs = register(reg, m.runs)
	m.records = register(reg, m.records)
	m.events = register(reg, m.events)
	m.degradations = register(reg, m.degradations)
	m.watermark = register(reg, m.watermark)
	m.duration = register(reg, m.duration)

	return m
}

// register adds c to reg, or hands back the collector already registered under
// the same descriptor.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	err := reg.Register(c)
	if err == nil {
		return c
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}

	panic(err)
}

func (m *Metrics) observe(mode domain.Mode, summary domain.RunSummary, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "failure"
	}

	m.runs.WithLabelValues(string(mode), result).Inc()
	m.records.WithLabelValues("fetched").Add(float64(summary.Fetched))
	m.records.WithLabelValues("upserted").Add(float64(summary.Upserted))
	m.records.WithLabelValues("skipped_missing_id").Add(float64(summary.SkippedMissingID))
	m.events.Add(float64(summary.Events))
	m.duration.WithLabelValues(string(mode)).Observe(elapsed.Seconds())

	if summary.Degradation != "" && summary.Degradation != domain.DegradationNone {
		m.degradations.WithLabelValues(string(summary.Degradation)).Inc()
	}
}

func (m *Metrics) setWatermark(t time.Time) {
	if m == nil {
		return
	}

	m.watermark.Set(float64(t.Unix()))
}
