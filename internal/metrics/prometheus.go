package metrics

import (
	"sync"

	"github.com/arloliu/rota/types"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing
// one that is never exercised leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	scheduleDuration *prometheus.HistogramVec
	scheduleAttempts *prometheus.CounterVec
	rounds           *prometheus.GaugeVec
	rosterSize       *prometheus.GaugeVec
	cacheHits        *prometheus.CounterVec
	publishes        *prometheus.CounterVec
}

var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "rota" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "rota"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.scheduleDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "schedule_duration_seconds",
			Help:      "Time taken to build a schedule in seconds by activity.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms .. ~1s
		}, []string{"activity"})

		p.scheduleAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "schedule_attempts_total",
			Help:      "Total scheduling attempts by activity and result (success,failure).",
		}, []string{"activity", "result"})

		p.rounds = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "rounds",
			Help:      "Rounds in the latest schedule by activity and kind (complete,partial).",
		}, []string{"activity", "kind"})

		p.rosterSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "roster_participants",
			Help:      "Participants in the latest roster by activity.",
		}, []string{"activity"})

		p.cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "cache_hits_total",
			Help:      "Total schedules served from the cache by activity.",
		}, []string{"activity"})

		p.publishes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "publisher",
			Name:      "publish_total",
			Help:      "Total schedule publish attempts by activity and result (success,failure).",
		}, []string{"activity", "result"})

		p.reg.MustRegister(p.scheduleDuration)
		p.reg.MustRegister(p.scheduleAttempts)
		p.reg.MustRegister(p.rounds)
		p.reg.MustRegister(p.rosterSize)
		p.reg.MustRegister(p.cacheHits)
		p.reg.MustRegister(p.publishes)
	})
}

func resultLabel(success bool) string {
	if success {
		return resultSuccess
	}

	return resultFailure
}

// RecordScheduleDuration observes the time taken to build a schedule.
func (p *PrometheusCollector) RecordScheduleDuration(activity string, duration float64) {
	p.ensureRegistered()
	p.scheduleDuration.WithLabelValues(activity).Observe(duration)
}

// RecordScheduleAttempt increments the attempt counter for the outcome.
func (p *PrometheusCollector) RecordScheduleAttempt(activity string, success bool) {
	p.ensureRegistered()
	p.scheduleAttempts.WithLabelValues(activity, resultLabel(success)).Inc()
}

// RecordRounds sets the complete and partial round gauges.
func (p *PrometheusCollector) RecordRounds(activity string, complete, partial int) {
	p.ensureRegistered()
	p.rounds.WithLabelValues(activity, "complete").Set(float64(complete))
	p.rounds.WithLabelValues(activity, "partial").Set(float64(partial))
}

// RecordRosterSize sets the roster size gauge.
func (p *PrometheusCollector) RecordRosterSize(activity string, participants int) {
	p.ensureRegistered()
	p.rosterSize.WithLabelValues(activity).Set(float64(participants))
}

// RecordCacheHit increments the cache hit counter.
func (p *PrometheusCollector) RecordCacheHit(activity string) {
	p.ensureRegistered()
	p.cacheHits.WithLabelValues(activity).Inc()
}

// RecordPublish increments the publish counter for the outcome.
func (p *PrometheusCollector) RecordPublish(activity string, success bool) {
	p.ensureRegistered()
	p.publishes.WithLabelValues(activity, resultLabel(success)).Inc()
}
