package types

import (
	"maps"
	"time"
)

// Participant is a roster entry for one activity and scheduling window.
//
// Role capacities count how many round slots of each role the participant
// can still fill. Strategies never mutate a caller's Participant; they work
// on private copies made with Clone.
type Participant struct {
	// ID uniquely identifies the participant within a roster (e.g., chat user ID).
	ID string `json:"id" yaml:"id"`

	// Name is the display name used by renderers.
	Name string `json:"name" yaml:"name"`

	// DPS1Capacity is the number of primary damage slots the participant can fill.
	DPS1Capacity int `json:"dps1" yaml:"dps1"`

	// DPS2Capacity is the number of secondary damage slots the participant can fill.
	DPS2Capacity int `json:"dps2" yaml:"dps2"`

	// MercyCapacity is the number of support slots the participant can fill.
	MercyCapacity int `json:"mercy" yaml:"mercy"`

	// Note is optional free text shown next to the participant (e.g., "out on Wednesday").
	Note string `json:"note,omitempty" yaml:"note,omitempty"`

	// Days records declared weekday availability keyed by day name.
	Days map[string]bool `json:"days,omitempty" yaml:"days,omitempty"`

	// UpdatedAt is when the sign-up was last stored. Zero for rosters not read from storage.
	UpdatedAt time.Time `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty"`
}

// Capacity returns the participant's capacity for the given role.
//
// Returns:
//   - int: Role capacity (0 for unknown roles)
func (p Participant) Capacity(role Role) int {
	switch role {
	case RoleDPS1:
		return p.DPS1Capacity
	case RoleDPS2:
		return p.DPS2Capacity
	case RoleMercy:
		return p.MercyCapacity
	default:
		return 0
	}
}

// TotalCapacity returns the sum of all role capacities.
func (p Participant) TotalCapacity() int {
	return p.DPS1Capacity + p.DPS2Capacity + p.MercyCapacity
}

// Clone returns a deep copy of the participant.
//
// The Days map is copied so the clone shares no mutable state with p.
func (p Participant) Clone() Participant {
	c := p
	if p.Days != nil {
		c.Days = maps.Clone(p.Days)
	}

	return c
}
