package rota

import "github.com/arloliu/rota/types"

// Sentinel errors returned by BuildSchedule and the Scheduler.
//
// They are the same values as in the types package, so errors.Is matches
// regardless of which package the caller imports.
var (
	// ErrInvalidCapacity is returned when a team capacity is not a positive multiple of 4.
	ErrInvalidCapacity = types.ErrInvalidCapacity

	// ErrInvalidParticipantData is returned for negative role capacities or
	// missing/duplicate participant identifiers.
	ErrInvalidParticipantData = types.ErrInvalidParticipantData

	// ErrSchedulingStalled is returned when the remainder phase stops making progress.
	ErrSchedulingStalled = types.ErrSchedulingStalled

	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrRosterSourceRequired is returned when the roster source is nil.
	ErrRosterSourceRequired = types.ErrRosterSourceRequired

	// ErrUnknownActivity is returned when an activity has no configured capacity.
	ErrUnknownActivity = types.ErrUnknownActivity

	// ErrEmptyRoster is returned when nobody signed up for the activity window.
	ErrEmptyRoster = types.ErrEmptyRoster

	// ErrPublishFailed is returned when a built schedule could not be published.
	ErrPublishFailed = types.ErrPublishFailed
)
