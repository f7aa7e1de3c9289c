package strategy

import (
	"fmt"

	"github.com/arloliu/rota/types"
)

// BatchRemainder implements exact-quota batch scheduling with a best-effort remainder.
type BatchRemainder struct{}

var _ types.ScheduleStrategy = (*BatchRemainder)(nil)

// NewBatchRemainder creates a new batch/remainder strategy.
//
// The strategy first packs as many complete rounds as the roster supports, each
// holding exactly the role quota. Capacity that cannot fill another complete round
// is then spread over partial rounds under a degraded quota policy.
//
// Returns:
//   - *BatchRemainder: Initialized batch/remainder strategy
//
// Example:
//
//	strat := strategy.NewBatchRemainder()
//	result, err := strat.Schedule(participants, 8)
func NewBatchRemainder() *BatchRemainder {
	return &BatchRemainder{}
}

// Schedule builds rounds using the batch phase followed by the remainder phase.
//
// The algorithm:
//  1. Validate capacity and derive the role quota
//  2. Normalize the roster into a private working pool
//  3. Batch phase: build complete rounds until one can no longer be filled
//  4. Remainder phase: drain the pool into partial rounds
//
// Parameters:
//   - participants: Caller-owned roster (never modified)
//   - capacity: Team size, a positive multiple of 4
//
// Returns:
//   - types.ScheduleResult: Complete rounds first, then partial rounds
//   - error: Validation error, or types.ErrSchedulingStalled together with the rounds built so far
func (br *BatchRemainder) Schedule(participants []types.Participant, capacity int) (types.ScheduleResult, error) {
	quota, err := CalculateQuota(capacity)
	if err != nil {
		return types.ScheduleResult{}, err
	}

	pool, err := newWorkingPool(participants)
	if err != nil {
		return types.ScheduleResult{}, err
	}

	result := types.ScheduleResult{Capacity: capacity, Quota: quota}
	result.Rounds = buildCompleteRounds(pool, quota)

	partial, err := distributeRemainder(pool, quota)
	result.Rounds = append(result.Rounds, partial...)
	if err != nil {
		return result, err
	}

	return result, nil
}

// buildCompleteRounds repeatedly assembles exact-quota rounds from the pool.
//
// Stops at the first attempt that cannot be completed. Each successful round
// consumes quota.Total() units, so the loop terminates.
func buildCompleteRounds(pool *workingPool, quota types.RoleQuota) []types.Round {
	var rounds []types.Round

	for {
		pool.prune()

		round, ok := nextCompleteRound(pool, quota)
		if !ok {
			return rounds
		}

		rounds = append(rounds, round)
	}
}

// nextCompleteRound tries to fill one round exactly to quota.
//
// Roles are filled mercy first, then dps1, then dps2, each from a fresh
// candidate view. Nothing is consumed unless the whole round can be filled.
func nextCompleteRound(pool *workingPool, quota types.RoleQuota) (types.Round, bool) {
	views := make([][]*member, len(types.Roles))
	for i, role := range types.Roles {
		views[i] = pool.candidates(role)
		if len(views[i]) < quota.For(role) {
			return types.Round{}, false
		}
	}

	type pick struct {
		m    *member
		role types.Role
	}

	placed := make(map[string]struct{}, quota.Total())
	picks := make([]pick, 0, quota.Total())

	for i, role := range types.Roles {
		need := quota.For(role)
		for _, m := range views[i] {
			if need == 0 {
				break
			}
			if _, ok := placed[m.id]; ok {
				continue
			}
			placed[m.id] = struct{}{}
			picks = append(picks, pick{m: m, role: role})
			need--
		}

		// Remaining candidates for this role are all in the round already.
		if need > 0 {
			return types.Round{}, false
		}
	}

	if len(picks) != quota.Total() {
		return types.Round{}, false
	}

	round := types.Round{Assignments: make([]types.Assignment, 0, len(picks)), Complete: true}
	for _, p := range picks {
		round.Assignments = append(round.Assignments, p.m.assign(p.role))
	}

	return round, true
}

// distributeRemainder drains the pool into best-effort partial rounds.
//
// Returns the rounds built so far with types.ErrSchedulingStalled if an
// iteration places nobody while members remain.
func distributeRemainder(pool *workingPool, quota types.RoleQuota) ([]types.Round, error) {
	var rounds []types.Round

	for !pool.empty() {
		round := nextPartialRound(pool, quota)
		if round.Size() > 0 {
			rounds = append(rounds, round)
		}

		pool.prune()

		if round.Size() == 0 && !pool.empty() {
			return rounds, fmt.Errorf("%w: %d participants left with no placeable capacity",
				types.ErrSchedulingStalled, pool.size())
		}
	}

	return rounds, nil
}

// nextPartialRound builds one remainder round.
//
// Mercy: the top quota.Mercy candidates when there are more than that, otherwise
// all of them. DPS: up to quota.DPS1+quota.DPS2 members not yet placed, in pool
// order, as dps1 when available and dps2 otherwise.
func nextPartialRound(pool *workingPool, quota types.RoleQuota) types.Round {
	placed := make(map[string]struct{}, quota.Total())
	var assignments []types.Assignment

	mercy := pool.candidates(types.RoleMercy)
	if len(mercy) > quota.Mercy {
		mercy = mercy[:quota.Mercy]
	}
	for _, m := range mercy {
		assignments = append(assignments, m.assign(types.RoleMercy))
		placed[m.id] = struct{}{}
	}

	slots := quota.DPS1 + quota.DPS2
	for _, m := range pool.members {
		if slots == 0 {
			break
		}
		if _, ok := placed[m.id]; ok {
			continue
		}

		var role types.Role
		switch {
		case m.dps1 > 0:
			role = types.RoleDPS1
		case m.dps2 > 0:
			role = types.RoleDPS2
		default:
			continue
		}

		assignments = append(assignments, m.assign(role))
		placed[m.id] = struct{}{}
		slots--
	}

	round := types.Round{Assignments: assignments}
	round.Complete = quota.SatisfiedBy(round.Counts())

	return round
}
