package strategy

import (
	"github.com/arloliu/rota/types"
)

// PriorityGreedy implements first-fit slot filling in priority order.
type PriorityGreedy struct{}

var _ types.ScheduleStrategy = (*PriorityGreedy)(nil)

// NewPriorityGreedy creates a new priority-greedy strategy.
//
// Each participant's slots are placed one at a time into the earliest round
// that has room, does not already contain the participant and, for mercy slots,
// has not reached the mercy quota. A new round is opened when none fits.
// Rounds are bounded but their composition is not exact.
//
// Returns:
//   - *PriorityGreedy: Initialized priority-greedy strategy
func NewPriorityGreedy() *PriorityGreedy {
	return &PriorityGreedy{}
}

// Schedule builds rounds by first-fit placement.
//
// The algorithm:
//  1. Validate capacity and normalize the roster (priority order)
//  2. For each participant: place mercy slots, then dps1 slots, then dps2 slots
//  3. Mark rounds whose role counts match the quota as complete
//
// Parameters:
//   - participants: Caller-owned roster (never modified)
//   - capacity: Team size, a positive multiple of 4
//
// Returns:
//   - types.ScheduleResult: Rounds in creation order
//   - error: types.ErrInvalidCapacity or types.ErrInvalidParticipantData
func (pg *PriorityGreedy) Schedule(participants []types.Participant, capacity int) (types.ScheduleResult, error) {
	quota, err := CalculateQuota(capacity)
	if err != nil {
		return types.ScheduleResult{}, err
	}

	pool, err := Normalize(participants)
	if err != nil {
		return types.ScheduleResult{}, err
	}

	var rounds []types.Round
	place := func(p types.Participant, role types.Role) {
		a := types.Assignment{ParticipantID: p.ID, ParticipantName: p.Name, Role: role}
		for i := range rounds {
			r := &rounds[i]
			if r.Size() >= capacity || r.Contains(p.ID) {
				continue
			}
			if role == types.RoleMercy && r.Counts()[types.RoleMercy] >= quota.Mercy {
				continue
			}
			r.Assignments = append(r.Assignments, a)

			return
		}
		rounds = append(rounds, types.Round{Assignments: []types.Assignment{a}})
	}

	for _, p := range pool {
		for _, role := range types.Roles {
			for range p.Capacity(role) {
				place(p, role)
			}
		}
	}

	for i := range rounds {
		rounds[i].Complete = quota.SatisfiedBy(rounds[i].Counts())
	}

	return types.ScheduleResult{Capacity: capacity, Quota: quota, Rounds: rounds}, nil
}
