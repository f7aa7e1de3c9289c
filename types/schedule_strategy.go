package types

// ScheduleStrategy builds rounds from a roster for a given team capacity.
//
// Strategies implement different round construction heuristics:
//   - BatchRemainder: Exact-quota complete rounds, then best-effort partial rounds (default)
//   - PriorityGreedy: First-fit slot filling in priority order
//   - Custom: User-defined algorithms
//
// Strategy implementations should:
//   - Be deterministic (same input → same output)
//   - Never mutate the caller's participants (deep-copy on entry)
//   - Never place a participant twice in one round
//   - Be stateless (safe for concurrent use)
type ScheduleStrategy interface {
	// Schedule assigns participants into rounds of the given capacity.
	//
	// Parameters:
	//   - participants: Caller-owned roster (read-only)
	//   - capacity: Team size; must be a positive multiple of 4
	//
	// Returns:
	//   - ScheduleResult: Rounds in creation order
	//   - error: ErrInvalidCapacity, ErrInvalidParticipantData or ErrSchedulingStalled
	Schedule(participants []Participant, capacity int) (ScheduleResult, error)
}
