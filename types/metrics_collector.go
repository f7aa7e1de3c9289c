package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Schedulers may be shared across goroutines, so implementations must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	SchedulerMetrics
	PublisherMetrics
}

// SchedulerMetrics defines metrics for scheduling runs.
type SchedulerMetrics interface {
	// RecordScheduleDuration records the time taken to build a schedule.
	//
	// Parameters:
	//   - activity: Activity name
	//   - duration: Time taken in seconds
	RecordScheduleDuration(activity string, duration float64)

	// RecordScheduleAttempt records a scheduling attempt (success or failure).
	RecordScheduleAttempt(activity string, success bool)

	// RecordRounds records the rounds produced by a successful run.
	//
	// Parameters:
	//   - activity: Activity name
	//   - complete: Rounds meeting the quota exactly
	//   - partial: Best-effort remainder rounds
	RecordRounds(activity string, complete, partial int)

	// RecordRosterSize sets the current roster size (gauge metric).
	RecordRosterSize(activity string, participants int)

	// RecordCacheHit records a schedule served from the cache.
	RecordCacheHit(activity string)
}

// PublisherMetrics defines metrics for schedule publishing.
type PublisherMetrics interface {
	// RecordPublish records a publish attempt (success or failure).
	RecordPublish(activity string, success bool)
}
