package rota

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/rota/internal/metrics"
	"github.com/arloliu/rota/strategy"
	rotatest "github.com/arloliu/rota/testing"
	"github.com/arloliu/rota/window"
)

// 2024-01-01 is a Monday; the next Wednesday window starts 2024-01-03.
var monday = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return monday }

type countingSource struct {
	mu      sync.Mutex
	roster  []Participant
	err     error
	windows []string
}

func (c *countingSource) ListParticipants(_ context.Context, _, window string) ([]Participant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.windows = append(c.windows, window)
	if c.err != nil {
		return nil, c.err
	}

	out := make([]Participant, len(c.roster))
	for i, p := range c.roster {
		out[i] = p.Clone()
	}

	return out, nil
}

func (c *countingSource) setRoster(roster []Participant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.roster = roster
}

type blockingSource struct{}

func (blockingSource) ListParticipants(ctx context.Context, _, _ string) ([]Participant, error) {
	<-ctx.Done()

	return nil, ctx.Err()
}

type countingStrategy struct {
	inner ScheduleStrategy
	mu    sync.Mutex
	calls int
}

func (c *countingStrategy) Schedule(participants []Participant, capacity int) (ScheduleResult, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	return c.inner.Schedule(participants, capacity)
}

func (c *countingStrategy) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.calls
}

type stallingStrategy struct{}

func (stallingStrategy) Schedule(_ []Participant, capacity int) (ScheduleResult, error) {
	result := ScheduleResult{
		Capacity: capacity,
		Rounds:   []Round{{Assignments: []Assignment{{ParticipantID: "d1", Role: RoleDPS1}}}},
	}

	return result, fmt.Errorf("%w: 1 participants left with no placeable capacity", ErrSchedulingStalled)
}

type recordingPublisher struct {
	mu        sync.Mutex
	err       error
	published []string
}

func (p *recordingPublisher) Publish(_ context.Context, activity, window string, _ ScheduleResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.published = append(p.published, activity+"/"+window)

	return p.err
}

type recordingMetrics struct {
	*metrics.NopMetrics

	mu        sync.Mutex
	cacheHits int
	successes int
	failures  int
	complete  int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{NopMetrics: metrics.NewNop()}
}

func (m *recordingMetrics) RecordCacheHit(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *recordingMetrics) RecordScheduleAttempt(_ string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.successes++
	} else {
		m.failures++
	}
}

func (m *recordingMetrics) RecordRounds(_ string, complete, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.complete = complete
}

func newTestScheduler(t *testing.T, src RosterSource, strat ScheduleStrategy, opts ...Option) *Scheduler {
	t.Helper()

	cfg := TestConfig()
	opts = append([]Option{WithClock(fixedClock), WithLogger(rotatest.NewTestLogger(t))}, opts...)

	sched, err := NewScheduler(&cfg, src, strat, opts...)
	require.NoError(t, err)

	return sched
}

func TestNewScheduler(t *testing.T) {
	src := &countingSource{}
	strat := strategy.NewBatchRemainder()

	t.Run("requires config and source", func(t *testing.T) {
		cfg := TestConfig()

		_, err := NewScheduler(nil, src, strat)
		require.ErrorIs(t, err, ErrInvalidConfig)

		_, err = NewScheduler(&cfg, nil, strat)
		require.ErrorIs(t, err, ErrRosterSourceRequired)
	})

	t.Run("owns a copy of the configuration", func(t *testing.T) {
		cfg := TestConfig()
		sched, err := NewScheduler(&cfg, &countingSource{roster: scenarioARoster()}, strat, WithClock(fixedClock))
		require.NoError(t, err)

		cfg.Activities["raid"] = 6
		cfg.Activities["extra"] = 4
		cfg.DayNames[0] = "x"

		require.Equal(t, map[string]int{"raid": 8}, sched.Activities())

		result, err := sched.ScheduleNext(context.Background(), "raid")
		require.NoError(t, err)
		require.Equal(t, 8, result.Capacity)

		_, err = sched.ScheduleNext(context.Background(), "extra")
		require.ErrorIs(t, err, ErrUnknownActivity)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		cfg := TestConfig()
		cfg.Activities["broken"] = 10

		_, err := NewScheduler(&cfg, src, strat)
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.ErrorIs(t, err, ErrInvalidCapacity)
		require.Contains(t, err.Error(), `"broken"`)
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg := Config{Activities: map[string]int{"raid": 8}}

		sched, err := NewScheduler(&cfg, src, strat)
		require.NoError(t, err)
		require.Equal(t, 10*time.Second, cfg.OperationTimeout)
		require.Equal(t, map[string]int{"raid": 8}, sched.Activities())
	})
}

func TestScheduler_Schedule(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the schedule for the requested window", func(t *testing.T) {
		src := &countingSource{roster: scenarioARoster()}
		sched := newTestScheduler(t, src, strategy.NewBatchRemainder())

		w, err := window.ParseStart("2024-01-10", time.UTC)
		require.NoError(t, err)

		result, err := sched.Schedule(ctx, "raid", w)
		require.NoError(t, err)
		require.Equal(t, 1, result.CompleteRounds())
		require.Equal(t, []string{"2024-01-10"}, src.windows)
	})

	t.Run("zero window means the next window", func(t *testing.T) {
		src := &countingSource{roster: scenarioARoster()}
		sched := newTestScheduler(t, src, strategy.NewBatchRemainder())

		_, err := sched.Schedule(ctx, "raid", window.Window{})
		require.NoError(t, err)
		require.Equal(t, []string{"2024-01-03"}, src.windows)
	})

	t.Run("unknown activity", func(t *testing.T) {
		m := newRecordingMetrics()
		sched := newTestScheduler(t, &countingSource{}, strategy.NewBatchRemainder(), WithMetrics(m))

		_, err := sched.ScheduleNext(ctx, "dungeon")
		require.ErrorIs(t, err, ErrUnknownActivity)
		require.Contains(t, err.Error(), `activity "dungeon"`)
		require.Equal(t, 1, m.failures)
	})

	t.Run("empty roster", func(t *testing.T) {
		sched := newTestScheduler(t, &countingSource{}, strategy.NewBatchRemainder())

		_, err := sched.ScheduleNext(ctx, "raid")
		require.ErrorIs(t, err, ErrEmptyRoster)
		require.Contains(t, err.Error(), "2024-01-03 ~ 2024-01-09")
	})

	t.Run("roster source failure", func(t *testing.T) {
		errDown := errors.New("roster store down")
		sched := newTestScheduler(t, &countingSource{err: errDown}, strategy.NewBatchRemainder())

		_, err := sched.ScheduleNext(ctx, "raid")
		require.ErrorIs(t, err, errDown)
		require.Contains(t, err.Error(), `activity "raid"`)
	})

	t.Run("roster lookup is bounded by the operation timeout", func(t *testing.T) {
		cfg := TestConfig()
		cfg.OperationTimeout = 20 * time.Millisecond

		sched, err := NewScheduler(&cfg, blockingSource{}, strategy.NewBatchRemainder())
		require.NoError(t, err)

		_, err = sched.ScheduleNext(ctx, "raid")
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("invalid roster data surfaces the engine error", func(t *testing.T) {
		roster := scenarioARoster()
		roster[0].MercyCapacity = -2
		sched := newTestScheduler(t, &countingSource{roster: roster}, strategy.NewBatchRemainder())

		_, err := sched.ScheduleNext(ctx, "raid")
		require.ErrorIs(t, err, ErrInvalidParticipantData)
	})

	t.Run("stalled run returns the rounds built so far", func(t *testing.T) {
		sched := newTestScheduler(t, &countingSource{roster: scenarioARoster()}, stallingStrategy{})

		result, err := sched.ScheduleNext(ctx, "raid")
		require.ErrorIs(t, err, ErrSchedulingStalled)
		require.Len(t, result.Rounds, 1)
	})
}

func TestScheduler_Windows(t *testing.T) {
	ctx := context.Background()
	src := &countingSource{roster: scenarioARoster()}
	sched := newTestScheduler(t, src, strategy.NewBatchRemainder())

	require.Equal(t, "2024-01-03", sched.NextWindow().Key())

	_, err := sched.ScheduleNext(ctx, "raid")
	require.NoError(t, err)
	_, err = sched.SchedulePrevious(ctx, "raid")
	require.NoError(t, err)

	require.Equal(t, []string{"2024-01-03", "2023-12-27"}, src.windows)
}

func TestScheduler_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("unchanged roster reuses the schedule", func(t *testing.T) {
		m := newRecordingMetrics()
		strat := &countingStrategy{inner: strategy.NewBatchRemainder()}
		sched := newTestScheduler(t, &countingSource{roster: scenarioARoster()}, strat, WithMetrics(m))

		first, err := sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)
		second, err := sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)

		require.Equal(t, first, second)
		require.Equal(t, 1, strat.count())
		require.Equal(t, 1, m.cacheHits)
		require.Equal(t, 2, m.successes)
	})

	t.Run("cached results are independent copies", func(t *testing.T) {
		sched := newTestScheduler(t, &countingSource{roster: scenarioARoster()}, strategy.NewBatchRemainder())

		first, err := sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)
		first.Rounds[0].Assignments[0].ParticipantID = "tampered"

		second, err := sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)
		require.NotEqual(t, "tampered", second.Rounds[0].Assignments[0].ParticipantID)
	})

	t.Run("changed roster rebuilds", func(t *testing.T) {
		src := &countingSource{roster: scenarioARoster()}
		strat := &countingStrategy{inner: strategy.NewBatchRemainder()}
		sched := newTestScheduler(t, src, strat)

		_, err := sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)

		roster := scenarioARoster()
		roster[0].DPS1Capacity = 2
		src.setRoster(roster)

		_, err = sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)
		require.Equal(t, 2, strat.count())
	})

	t.Run("windows are cached separately", func(t *testing.T) {
		strat := &countingStrategy{inner: strategy.NewBatchRemainder()}
		sched := newTestScheduler(t, &countingSource{roster: scenarioARoster()}, strat)

		_, err := sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)
		_, err = sched.SchedulePrevious(ctx, "raid")
		require.NoError(t, err)
		require.Equal(t, 2, strat.count())
	})

	t.Run("invalidate drops the activity's schedules", func(t *testing.T) {
		strat := &countingStrategy{inner: strategy.NewBatchRemainder()}
		sched := newTestScheduler(t, &countingSource{roster: scenarioARoster()}, strat)

		_, err := sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)
		sched.Invalidate("raid")
		_, err = sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)
		require.Equal(t, 2, strat.count())
	})

	t.Run("disabled cache always rebuilds", func(t *testing.T) {
		cfg := TestConfig()
		cfg.DisableCache = true
		strat := &countingStrategy{inner: strategy.NewBatchRemainder()}

		sched, err := NewScheduler(&cfg, &countingSource{roster: scenarioARoster()}, strat, WithClock(fixedClock))
		require.NoError(t, err)

		for range 3 {
			_, err := sched.ScheduleNext(ctx, "raid")
			require.NoError(t, err)
		}
		require.Equal(t, 3, strat.count())
	})
}

func TestScheduler_Hooks(t *testing.T) {
	ctx := context.Background()

	t.Run("built hook sees every result and errors do not fail the call", func(t *testing.T) {
		var built []string
		hooks := &Hooks{
			OnScheduleBuilt: func(_ context.Context, activity string, result ScheduleResult) error {
				built = append(built, fmt.Sprintf("%s:%d", activity, len(result.Rounds)))
				return errors.New("renderer offline")
			},
		}
		sched := newTestScheduler(t, &countingSource{roster: scenarioARoster()}, strategy.NewBatchRemainder(), WithHooks(hooks))

		_, err := sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)
		_, err = sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)

		require.Equal(t, []string{"raid:1", "raid:1"}, built)
	})

	t.Run("error hook receives the wrapped error", func(t *testing.T) {
		var seen error
		hooks := &Hooks{
			OnError: func(_ context.Context, err error) error {
				seen = err
				return nil
			},
		}
		sched := newTestScheduler(t, &countingSource{}, strategy.NewBatchRemainder(), WithHooks(hooks))

		_, err := sched.ScheduleNext(ctx, "raid")
		require.Error(t, err)
		require.ErrorIs(t, seen, ErrEmptyRoster)
		require.Equal(t, err.Error(), seen.Error())
	})
}

func TestScheduler_Publisher(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes built schedules once", func(t *testing.T) {
		pub := &recordingPublisher{}
		sched := newTestScheduler(t, &countingSource{roster: scenarioARoster()}, strategy.NewBatchRemainder(), WithPublisher(pub))

		_, err := sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)
		_, err = sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)

		require.Equal(t, []string{"raid/2024-01-03"}, pub.published)
	})

	t.Run("publish failure fails the call and is retried", func(t *testing.T) {
		pub := &recordingPublisher{err: errors.New("bucket unavailable")}
		sched := newTestScheduler(t, &countingSource{roster: scenarioARoster()}, strategy.NewBatchRemainder(), WithPublisher(pub))

		result, err := sched.ScheduleNext(ctx, "raid")
		require.ErrorIs(t, err, ErrPublishFailed)
		require.Len(t, result.Rounds, 1)

		pub.err = nil
		_, err = sched.ScheduleNext(ctx, "raid")
		require.NoError(t, err)
		require.Len(t, pub.published, 2)
	})
}

func TestScheduler_Summary(t *testing.T) {
	ctx := context.Background()
	sched := newTestScheduler(t, &countingSource{roster: scenarioARoster()}, strategy.NewBatchRemainder())

	summary, err := sched.Summary(ctx, "raid", sched.NextWindow())
	require.NoError(t, err)
	require.Equal(t, 8, summary.Participants)
	require.Equal(t, 1, summary.MaxCompleteRounds(RoleQuota{Mercy: 2, DPS1: 4, DPS2: 2}))

	_, err = sched.Summary(ctx, "dungeon", sched.NextWindow())
	require.ErrorIs(t, err, ErrUnknownActivity)
}

func TestScheduler_Concurrent(t *testing.T) {
	ctx := context.Background()
	sched := newTestScheduler(t, &countingSource{roster: rotatest.Roster(20, 2, 1, 1)}, strategy.NewBatchRemainder())

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if _, err := sched.ScheduleNext(ctx, "raid"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

// greedyRoster packs one complete round under batch/remainder but none under
// first-fit placement with capacity 4.
func greedyRoster() []Participant {
	return []Participant{
		rotatest.Participant("a", 0, 0, 1),
		rotatest.Participant("b", 1, 0, 0),
		rotatest.Participant("c", 3, 0, 0),
		rotatest.Participant("d", 1, 0, 0),
		rotatest.Participant("e", 0, 1, 0),
	}
}

func TestNewScheduler_ConfiguredStrategy(t *testing.T) {
	ctx := context.Background()

	newConfig := func(name string) Config {
		cfg := TestConfig()
		cfg.Activities = map[string]int{"duo": 4}
		cfg.Strategy = name

		return cfg
	}

	greedy, err := strategy.NewPriorityGreedy().Schedule(greedyRoster(), 4)
	require.NoError(t, err)
	batch, err := strategy.NewBatchRemainder().Schedule(greedyRoster(), 4)
	require.NoError(t, err)
	require.Equal(t, 0, greedy.CompleteRounds())
	require.Equal(t, 1, batch.CompleteRounds())

	t.Run("nil strategy runs the configured heuristic", func(t *testing.T) {
		rec := &warnRecorder{}
		cfg := newConfig(strategy.NamePriorityGreedy)

		sched, err := NewScheduler(&cfg, &countingSource{roster: greedyRoster()}, nil,
			WithClock(fixedClock), WithLogger(rec))
		require.NoError(t, err)
		require.Len(t, rec.warnings, 1)

		result, err := sched.ScheduleNext(ctx, "duo")
		require.NoError(t, err)
		require.Equal(t, greedy, result)
	})

	t.Run("nil strategy defaults to batch remainder", func(t *testing.T) {
		rec := &warnRecorder{}
		cfg := newConfig("")

		sched, err := NewScheduler(&cfg, &countingSource{roster: greedyRoster()}, nil,
			WithClock(fixedClock), WithLogger(rec))
		require.NoError(t, err)
		require.Empty(t, rec.warnings)

		result, err := sched.ScheduleNext(ctx, "duo")
		require.NoError(t, err)
		require.Equal(t, batch, result)
	})

	t.Run("explicit strategy takes precedence", func(t *testing.T) {
		rec := &warnRecorder{}
		cfg := newConfig(strategy.NamePriorityGreedy)

		sched, err := NewScheduler(&cfg, &countingSource{roster: greedyRoster()}, strategy.NewBatchRemainder(),
			WithClock(fixedClock), WithLogger(rec))
		require.NoError(t, err)
		require.Empty(t, rec.warnings)

		result, err := sched.ScheduleNext(ctx, "duo")
		require.NoError(t, err)
		require.Equal(t, batch, result)
	})

	t.Run("rejects an unknown configured strategy", func(t *testing.T) {
		cfg := newConfig("round_robin")

		_, err := NewScheduler(&cfg, &countingSource{roster: greedyRoster()}, nil)
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.ErrorIs(t, err, strategy.ErrUnknownStrategy)
	})
}
