package rota

import "time"

// Option configures a Scheduler with optional dependencies.
type Option func(*schedulerOptions)

type schedulerOptions struct {
	hooks     *Hooks
	metrics   MetricsCollector
	logger    Logger
	publisher SchedulePublisher
	now       func() time.Time
}

// WithHooks sets scheduling event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewScheduler
//
// Example:
//
//	hooks := &rota.Hooks{
//	    OnScheduleBuilt: func(ctx context.Context, activity string, result rota.ScheduleResult) error {
//	        return render(activity, result)
//	    },
//	}
//	sched, err := rota.NewScheduler(&cfg, src, strategy.NewBatchRemainder(), rota.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *schedulerOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Example:
//
//	metrics := rota.NewPrometheusMetrics(prometheus.DefaultRegisterer, "rota")
//	sched, err := rota.NewScheduler(&cfg, src, strategy.NewBatchRemainder(), rota.WithMetrics(metrics))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *schedulerOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Example:
//
//	logger := rota.NewSlogLogger(slog.Default())
//	sched, err := rota.NewScheduler(&cfg, src, strategy.NewBatchRemainder(), rota.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *schedulerOptions) {
		o.logger = logger
	}
}

// WithPublisher sets where successful schedules are published.
//
// Parameters:
//   - publisher: SchedulePublisher implementation, e.g. publish.KVPublisher
//
// Returns:
//   - Option: Functional option for NewScheduler
func WithPublisher(publisher SchedulePublisher) Option {
	return func(o *schedulerOptions) {
		o.publisher = publisher
	}
}

// WithClock overrides the clock used to pick the next and previous windows.
func WithClock(now func() time.Time) Option {
	return func(o *schedulerOptions) {
		o.now = now
	}
}
