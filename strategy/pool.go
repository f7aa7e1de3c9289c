package strategy

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/rota/types"
)

// Normalize validates the roster and returns an independent, priority-ordered copy.
//
// The copy is sorted by total committed capacity, highest first. The sort is stable,
// so participants with equal totals keep their input order. The caller's slice and
// its elements (including nested maps) are never modified.
//
// Parameters:
//   - participants: Caller-owned roster
//
// Returns:
//   - []types.Participant: Deep copies in priority order
//   - error: types.ErrInvalidParticipantData for a negative capacity or a missing/duplicate ID
func Normalize(participants []types.Participant) ([]types.Participant, error) {
	seen := make(map[string]struct{}, len(participants))
	out := make([]types.Participant, 0, len(participants))

	for i, p := range participants {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: participant at index %d has no identifier", types.ErrInvalidParticipantData, i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate participant %q", types.ErrInvalidParticipantData, p.ID)
		}
		if p.DPS1Capacity < 0 || p.DPS2Capacity < 0 || p.MercyCapacity < 0 {
			return nil, fmt.Errorf("%w: participant %q has negative capacity (dps1=%d dps2=%d mercy=%d)",
				types.ErrInvalidParticipantData, p.ID, p.DPS1Capacity, p.DPS2Capacity, p.MercyCapacity)
		}

		seen[p.ID] = struct{}{}
		out = append(out, p.Clone())
	}

	slices.SortStableFunc(out, func(a, b types.Participant) int {
		return cmp.Compare(b.TotalCapacity(), a.TotalCapacity())
	})

	return out, nil
}

// member is a working-pool entry: an immutable identity plus mutable role counters.
type member struct {
	id   string
	name string

	dps1  int
	dps2  int
	mercy int
}

func (m *member) capacity(role types.Role) int {
	switch role {
	case types.RoleDPS1:
		return m.dps1
	case types.RoleDPS2:
		return m.dps2
	case types.RoleMercy:
		return m.mercy
	default:
		return 0
	}
}

// assign consumes one unit of the role and returns the matching assignment.
func (m *member) assign(role types.Role) types.Assignment {
	switch role {
	case types.RoleDPS1:
		m.dps1--
	case types.RoleDPS2:
		m.dps2--
	case types.RoleMercy:
		m.mercy--
	}

	return types.Assignment{ParticipantID: m.id, ParticipantName: m.name, Role: role}
}

func (m *member) exhausted() bool {
	return m.dps1 == 0 && m.dps2 == 0 && m.mercy == 0
}

// workingPool is the private, mutable roster of one scheduling run.
//
// Members stay in priority order for the lifetime of the pool.
type workingPool struct {
	members []*member
}

func newWorkingPool(participants []types.Participant) (*workingPool, error) {
	normalized, err := Normalize(participants)
	if err != nil {
		return nil, err
	}

	pool := &workingPool{members: make([]*member, len(normalized))}
	for i, p := range normalized {
		pool.members[i] = &member{
			id:    p.ID,
			name:  p.Name,
			dps1:  p.DPS1Capacity,
			dps2:  p.DPS2Capacity,
			mercy: p.MercyCapacity,
		}
	}

	return pool, nil
}

// candidates returns members with remaining capacity for role, highest capacity first.
//
// The view is rebuilt on every call; ties keep pool order.
func (wp *workingPool) candidates(role types.Role) []*member {
	out := make([]*member, 0, len(wp.members))
	for _, m := range wp.members {
		if m.capacity(role) > 0 {
			out = append(out, m)
		}
	}

	slices.SortStableFunc(out, func(a, b *member) int {
		return cmp.Compare(b.capacity(role), a.capacity(role))
	})

	return out
}

// prune drops members whose three capacities are all zero.
func (wp *workingPool) prune() {
	wp.members = slices.DeleteFunc(wp.members, (*member).exhausted)
}

func (wp *workingPool) empty() bool {
	return len(wp.members) == 0
}

func (wp *workingPool) size() int {
	return len(wp.members)
}
