package rota

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/rota/internal/logging"
	"github.com/arloliu/rota/internal/metrics"
	"github.com/arloliu/rota/strategy"
	"github.com/arloliu/rota/types"
)

// BuildSchedule assigns a roster to rounds of the given team capacity.
//
// It runs the default strategy: complete rounds meeting the role quota are
// packed first, then whatever capacity is left is spread over best-effort
// remainder rounds. The input is never modified.
//
// Parameters:
//   - participants: Roster with per-role capacities
//   - capacity: Team capacity, a positive multiple of 4
//
// Returns:
//   - ScheduleResult: Quota and rounds; complete rounds come first
//   - error: ErrInvalidCapacity, ErrInvalidParticipantData, or ErrSchedulingStalled
//     (the latter alongside the rounds built before the stall)
//
// Example:
//
//	result, err := rota.BuildSchedule(participants, 8)
//	if err != nil {
//	    return err
//	}
//	for i, round := range result.Rounds {
//	    fmt.Println(i+1, round.Complete, round.Size())
//	}
func BuildSchedule(participants []Participant, capacity int) (ScheduleResult, error) {
	return strategy.NewBatchRemainder().Schedule(participants, capacity)
}

// RosterSummary aggregates a roster the way sign-up listings show it.
type RosterSummary struct {
	Participants int
	DPS1         int
	DPS2         int
	Mercy        int

	// Days counts participants per declared day name.
	Days map[string]int
}

// Slots returns the total role capacity of the roster.
func (s RosterSummary) Slots() int {
	return s.DPS1 + s.DPS2 + s.Mercy
}

// MaxCompleteRounds returns an upper bound on the complete rounds the roster
// can fill under the quota, ignoring the one-seat-per-round rule.
func (s RosterSummary) MaxCompleteRounds(quota RoleQuota) int {
	if quota.DPS1 <= 0 || quota.DPS2 <= 0 || quota.Mercy <= 0 {
		return 0
	}

	return min(s.DPS1/quota.DPS1, s.DPS2/quota.DPS2, s.Mercy/quota.Mercy)
}

// Summarize counts participants, per-role capacity and declared days.
func Summarize(participants []Participant) RosterSummary {
	summary := RosterSummary{
		Participants: len(participants),
		Days:         make(map[string]int),
	}

	for _, p := range participants {
		summary.DPS1 += p.Capacity(types.RoleDPS1)
		summary.DPS2 += p.Capacity(types.RoleDPS2)
		summary.Mercy += p.Capacity(types.RoleMercy)

		for day, ok := range p.Days {
			if ok {
				summary.Days[day]++
			}
		}
	}

	return summary
}

// NewPrometheusMetrics creates a Prometheus-backed MetricsCollector.
//
// Parameters:
//   - reg: Registerer for the collectors (prometheus.DefaultRegisterer if nil)
//   - namespace: Metric namespace ("rota" if empty)
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}

// NewSlogLogger adapts a *slog.Logger to Logger (slog.Default() if nil).
func NewSlogLogger(logger *slog.Logger) Logger {
	return logging.NewSlog(logger)
}
