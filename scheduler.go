package rota

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/rota/internal/hash"
	"github.com/arloliu/rota/internal/hooks"
	"github.com/arloliu/rota/internal/logging"
	"github.com/arloliu/rota/internal/metrics"
	"github.com/arloliu/rota/strategy"
	"github.com/arloliu/rota/window"
)

// Scheduler builds schedules for configured activities from a roster source.
//
// Each call looks up the activity's team capacity, fetches the roster of the
// requested window, runs the strategy and hands the result to hooks and the
// optional publisher. Schedules are cached per (activity, window) and reused
// while the roster fingerprint is unchanged.
//
// A Scheduler is safe for concurrent use.
type Scheduler struct {
	cfg       Config
	source    RosterSource
	strategy  ScheduleStrategy
	publisher SchedulePublisher
	hooks     Hooks
	metrics   MetricsCollector
	logger    Logger
	now       func() time.Time
	weekday   time.Weekday

	cache *xsync.Map[cacheKey, cachedSchedule]
}

type cacheKey struct {
	activity string
	window   string
}

type cachedSchedule struct {
	fingerprint uint64
	result      ScheduleResult
}

// NewScheduler creates a new scheduler.
//
// Parameters:
//   - cfg: Configuration (defaults are applied in place)
//   - source: Roster source
//   - strat: Schedule strategy; nil selects cfg.Strategy via strategy.ByName
//   - opts: Optional dependencies
//
// Returns:
//   - *Scheduler: Ready-to-use scheduler
//   - error: ErrInvalidConfig or ErrRosterSourceRequired
//
// Example:
//
//	cfg, err := rota.LoadConfig("rota.yaml")
//	if err != nil { /* handle */ }
//	sched, err := rota.NewScheduler(&cfg, source.NewKV(kv), nil,
//	    rota.WithLogger(logger),
//	)
//	result, err := sched.ScheduleNext(ctx, "valtan")
func NewScheduler(cfg *Config, source RosterSource, strat ScheduleStrategy, opts ...Option) (*Scheduler, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if source == nil {
		return nil, ErrRosterSourceRequired
	}
	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	options := &schedulerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	cfg.ValidateWithWarnings(loggerInstance)

	if strat == nil {
		// Validate already resolved the name.
		strat, _ = strategy.ByName(cfg.Strategy)
	}
	if _, ok := strat.(*strategy.PriorityGreedy); ok {
		loggerInstance.Warn(
			"priority_greedy strategy may leave rounds short of the role quota",
			"recommended", strategy.NameBatchRemainder,
		)
	}

	now := options.now
	if now == nil {
		now = time.Now
	}

	// Validate already parsed it.
	weekday, _ := cfg.Weekday()

	own := *cfg
	own.Activities = maps.Clone(cfg.Activities)
	own.DayNames = slices.Clone(cfg.DayNames)

	return &Scheduler{
		cfg:       own,
		source:    source,
		strategy:  strat,
		publisher: options.publisher,
		hooks:     hooks.Fill(options.hooks),
		metrics:   metricsCollector,
		logger:    loggerInstance,
		now:       now,
		weekday:   weekday,
		cache:     xsync.NewMap[cacheKey, cachedSchedule](),
	}, nil
}

// Schedule builds the schedule of an activity for a window.
//
// A zero window means the next window per the scheduler's clock.
//
// Parameters:
//   - ctx: Context for the roster lookup, hooks and publishing
//   - activity: Configured activity name
//   - w: Scheduling window
//
// Returns:
//   - ScheduleResult: The schedule (partial rounds accompany ErrSchedulingStalled)
//   - error: Wrapped as `activity "<name>": <cause>`
func (s *Scheduler) Schedule(ctx context.Context, activity string, w window.Window) (ScheduleResult, error) {
	if w.IsZero() {
		w = s.NextWindow()
	}

	result, err := s.schedule(ctx, activity, w)
	s.metrics.RecordScheduleAttempt(activity, err == nil)

	if err != nil {
		err = fmt.Errorf("activity %q: %w", activity, err)
		s.logger.Error("schedule failed", "activity", activity, "window", w.Key(), "error", err)

		if hookErr := s.hooks.OnError(ctx, err); hookErr != nil {
			s.logger.Warn("OnError hook failed", "activity", activity, "error", hookErr)
		}

		return result, err
	}

	return result, nil
}

// ScheduleNext builds the schedule for the next window.
func (s *Scheduler) ScheduleNext(ctx context.Context, activity string) (ScheduleResult, error) {
	return s.Schedule(ctx, activity, s.NextWindow())
}

// SchedulePrevious builds the schedule for the window before the next one.
func (s *Scheduler) SchedulePrevious(ctx context.Context, activity string) (ScheduleResult, error) {
	return s.Schedule(ctx, activity, s.NextWindow().Previous())
}

// NextWindow returns the upcoming scheduling window per the scheduler's clock.
func (s *Scheduler) NextWindow() window.Window {
	return window.Next(s.now(), s.weekday)
}

// Summary summarizes the roster of an activity window.
//
// Returns:
//   - RosterSummary: Participant count, per-role capacity and declared days
//   - error: ErrUnknownActivity or the roster source error
func (s *Scheduler) Summary(ctx context.Context, activity string, w window.Window) (RosterSummary, error) {
	if _, ok := s.cfg.Activities[activity]; !ok {
		return RosterSummary{}, fmt.Errorf("activity %q: %w", activity, ErrUnknownActivity)
	}

	participants, err := s.listParticipants(ctx, activity, w)
	if err != nil {
		return RosterSummary{}, fmt.Errorf("activity %q: %w", activity, err)
	}

	return Summarize(participants), nil
}

// Invalidate drops every cached schedule of an activity.
func (s *Scheduler) Invalidate(activity string) {
	s.cache.Range(func(key cacheKey, _ cachedSchedule) bool {
		if key.activity == activity {
			s.cache.Delete(key)
		}

		return true
	})
}

// Activities returns the configured activity capacities.
func (s *Scheduler) Activities() map[string]int {
	out := make(map[string]int, len(s.cfg.Activities))
	for name, capacity := range s.cfg.Activities {
		out[name] = capacity
	}

	return out
}

func (s *Scheduler) schedule(ctx context.Context, activity string, w window.Window) (ScheduleResult, error) {
	capacity, ok := s.cfg.Activities[activity]
	if !ok {
		return ScheduleResult{}, ErrUnknownActivity
	}

	participants, err := s.listParticipants(ctx, activity, w)
	if err != nil {
		return ScheduleResult{}, err
	}

	s.metrics.RecordRosterSize(activity, len(participants))

	if len(participants) == 0 {
		return ScheduleResult{}, fmt.Errorf("%w: window %s", ErrEmptyRoster, w)
	}

	key := cacheKey{activity: activity, window: w.Key()}
	fingerprint := hash.Roster(participants, capacity)

	if !s.cfg.DisableCache {
		if cached, ok := s.cache.Load(key); ok && cached.fingerprint == fingerprint {
			s.metrics.RecordCacheHit(activity)
			s.logger.Debug("serving cached schedule",
				"activity", activity,
				"window", w.Key(),
				"fingerprint", hash.Hex(fingerprint))

			result := cached.result.Clone()
			s.runBuiltHook(ctx, activity, result)

			return result, nil
		}
	}

	start := time.Now()
	result, err := s.strategy.Schedule(participants, capacity)
	s.metrics.RecordScheduleDuration(activity, time.Since(start).Seconds())
	if err != nil {
		return result, err
	}

	complete, partial := result.CompleteRounds(), result.PartialRounds()
	s.metrics.RecordRounds(activity, complete, partial)

	if !s.cfg.DisableCache {
		s.cache.Store(key, cachedSchedule{fingerprint: fingerprint, result: result.Clone()})
	}

	s.logger.Info("schedule built",
		"activity", activity,
		"window", w.Key(),
		"participants", len(participants),
		"capacity", capacity,
		"complete_rounds", complete,
		"partial_rounds", partial)

	s.runBuiltHook(ctx, activity, result.Clone())

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, activity, w.Key(), result.Clone()); err != nil {
			// A failed publish must be retried on the next call.
			s.cache.Delete(key)
			if !errors.Is(err, ErrPublishFailed) {
				err = fmt.Errorf("%w: %w", ErrPublishFailed, err)
			}

			return result, err
		}
	}

	return result, nil
}

func (s *Scheduler) listParticipants(ctx context.Context, activity string, w window.Window) ([]Participant, error) {
	listCtx, cancel := context.WithTimeout(ctx, s.cfg.OperationTimeout)
	defer cancel()

	participants, err := s.source.ListParticipants(listCtx, activity, w.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for window %s: %w", w.Key(), err)
	}

	return participants, nil
}

func (s *Scheduler) runBuiltHook(ctx context.Context, activity string, result ScheduleResult) {
	if err := s.hooks.OnScheduleBuilt(ctx, activity, result); err != nil {
		s.logger.Warn("OnScheduleBuilt hook failed", "activity", activity, "error", err)
	}
}
