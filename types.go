package rota

import "github.com/arloliu/rota/types"

// Re-export types from the types package.
//
// Internal packages depend on types without depending on the root rota
// package, while users still get rota.Participant, rota.Logger and so on.
type (
	Participant    = types.Participant
	Role           = types.Role
	RoleQuota      = types.RoleQuota
	Assignment     = types.Assignment
	Round          = types.Round
	ScheduleResult = types.ScheduleResult
)

// Re-export interfaces from the types package for convenience.
type (
	ScheduleStrategy  = types.ScheduleStrategy
	RosterSource      = types.RosterSource
	SchedulePublisher = types.SchedulePublisher
	MetricsCollector  = types.MetricsCollector
	Logger            = types.Logger
	Hooks             = types.Hooks
)

// Re-export Role constants from the types package.
const (
	RoleDPS1  = types.RoleDPS1
	RoleDPS2  = types.RoleDPS2
	RoleMercy = types.RoleMercy
)
