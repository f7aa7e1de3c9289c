package types

// RoleQuota is the exact number of slots per role a complete round must contain.
type RoleQuota struct {
	Mercy int `json:"mercy"`
	DPS1  int `json:"dps1"`
	DPS2  int `json:"dps2"`
}

// Total returns the number of slots covered by the quota.
func (q RoleQuota) Total() int {
	return q.Mercy + q.DPS1 + q.DPS2
}

// For returns the quota for the given role.
func (q RoleQuota) For(role Role) int {
	switch role {
	case RoleDPS1:
		return q.DPS1
	case RoleDPS2:
		return q.DPS2
	case RoleMercy:
		return q.Mercy
	default:
		return 0
	}
}

// SatisfiedBy reports whether counts match the quota exactly.
func (q RoleQuota) SatisfiedBy(counts map[Role]int) bool {
	for _, role := range Roles {
		if counts[role] != q.For(role) {
			return false
		}
	}

	return true
}

// Assignment places one participant into one role slot of a round.
type Assignment struct {
	ParticipantID   string `json:"participantId"`
	ParticipantName string `json:"participantName"`
	Role            Role   `json:"role"`
}

// Round is one team: an ordered list of assignments.
type Round struct {
	// Assignments in placement order.
	Assignments []Assignment `json:"assignments"`

	// Complete is true when the round meets the role quota exactly.
	Complete bool `json:"complete"`
}

// Size returns the number of assignments in the round.
func (r Round) Size() int {
	return len(r.Assignments)
}

// Counts returns the number of assignments per role.
func (r Round) Counts() map[Role]int {
	counts := make(map[Role]int, len(Roles))
	for _, a := range r.Assignments {
		counts[a.Role]++
	}

	return counts
}

// Contains reports whether the participant already holds a slot in the round.
func (r Round) Contains(participantID string) bool {
	for _, a := range r.Assignments {
		if a.ParticipantID == participantID {
			return true
		}
	}

	return false
}

// Clone returns a copy of the round that shares no backing array with r.
func (r Round) Clone() Round {
	c := Round{Complete: r.Complete}
	if r.Assignments != nil {
		c.Assignments = make([]Assignment, len(r.Assignments))
		copy(c.Assignments, r.Assignments)
	}

	return c
}

// ScheduleResult is the ordered sequence of rounds produced by one scheduling run.
//
// Round order is creation order and doubles as display order.
type ScheduleResult struct {
	Capacity int       `json:"capacity"`
	Quota    RoleQuota `json:"quota"`
	Rounds   []Round   `json:"rounds"`
}

// CompleteRounds returns the number of rounds that meet the quota exactly.
func (s ScheduleResult) CompleteRounds() int {
	n := 0
	for _, r := range s.Rounds {
		if r.Complete {
			n++
		}
	}

	return n
}

// PartialRounds returns the number of best-effort rounds.
func (s ScheduleResult) PartialRounds() int {
	return len(s.Rounds) - s.CompleteRounds()
}

// AssignmentsFor counts the participant's assignments per role across all rounds.
func (s ScheduleResult) AssignmentsFor(participantID string) map[Role]int {
	counts := make(map[Role]int, len(Roles))
	for _, r := range s.Rounds {
		for _, a := range r.Assignments {
			if a.ParticipantID == participantID {
				counts[a.Role]++
			}
		}
	}

	return counts
}

// Clone returns a deep copy of the result.
func (s ScheduleResult) Clone() ScheduleResult {
	c := ScheduleResult{Capacity: s.Capacity, Quota: s.Quota}
	if s.Rounds != nil {
		c.Rounds = make([]Round, len(s.Rounds))
		for i, r := range s.Rounds {
			c.Rounds[i] = r.Clone()
		}
	}

	return c
}
