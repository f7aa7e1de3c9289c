// Package metrics provides MetricsCollector implementations.
package metrics

import "github.com/arloliu/rota/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	sched, err := rota.NewScheduler(&cfg, src, strategy, rota.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// SchedulerMetrics implementation

// RecordScheduleDuration discards the schedule duration metric.
func (n *NopMetrics) RecordScheduleDuration(_ /* activity */ string, _ /* duration */ float64) {}

// RecordScheduleAttempt discards the schedule attempt metric.
func (n *NopMetrics) RecordScheduleAttempt(_ /* activity */ string, _ /* success */ bool) {}

// RecordRounds discards the round count metric.
func (n *NopMetrics) RecordRounds(_ /* activity */ string, _ /* complete */, _ /* partial */ int) {}

// RecordRosterSize discards the roster size metric.
func (n *NopMetrics) RecordRosterSize(_ /* activity */ string, _ /* participants */ int) {}

// RecordCacheHit discards the cache hit metric.
func (n *NopMetrics) RecordCacheHit(_ /* activity */ string) {}

// PublisherMetrics implementation

// RecordPublish discards the publish metric.
func (n *NopMetrics) RecordPublish(_ /* activity */ string, _ /* success */ bool) {}
