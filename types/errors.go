package types

import (
	"errors"
	"strings"
)

// Sentinel errors for the Rota library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap them with context using fmt.Errorf("%w: %s", sentinel, detail).
//
// Error Naming Convention:
//   - Use descriptive names with Err prefix
//   - Group by component (Engine, Scheduler, Source, Publisher)
//   - Use consistent messages across similar error types

// Engine errors - Returned by scheduling strategies.
var (
	// ErrInvalidCapacity is returned when a team capacity is not a positive multiple of 4.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrInvalidParticipantData is returned when a participant has a negative role
	// capacity or a missing/duplicate identifier.
	ErrInvalidParticipantData = errors.New("invalid participant data")

	// ErrSchedulingStalled is returned when the remainder phase makes no progress
	// while participants remain in the working pool.
	ErrSchedulingStalled = errors.New("scheduling stalled")
)

// Scheduler errors - Public API errors returned by the Scheduler component.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRosterSourceRequired is returned when the roster source is nil.
	ErrRosterSourceRequired = errors.New("roster source is required")

	// ErrUnknownActivity is returned when an activity has no configured capacity.
	ErrUnknownActivity = errors.New("unknown activity")

	// ErrEmptyRoster is returned when nobody signed up for the activity window.
	ErrEmptyRoster = errors.New("no participants signed up")
)

// Storage errors - Shared by KV-backed sources and publishers.
var (
	// ErrPublishFailed is returned when publishing a schedule fails.
	ErrPublishFailed = errors.New("failed to publish schedule")

	// ErrNoKeysFound is returned when NATS KV returns no keys (expected condition).
	ErrNoKeysFound = errors.New("no keys found")
)

// IsNoKeysFoundError reports whether err indicates that a NATS KV listing was empty.
//
// NATS returns "nats: no keys found" either directly or wrapped, so the
// message is matched in addition to the sentinel.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if the error indicates no keys were found, false otherwise
func IsNoKeysFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoKeysFound) {
		return true
	}

	return strings.Contains(err.Error(), "no keys found")
}
