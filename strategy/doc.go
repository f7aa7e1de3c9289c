// Package strategy provides built-in schedule strategy implementations.
//
// Schedule strategies determine how a roster is packed into rounds of a fixed
// team capacity. The package includes two built-in strategies:
//
//   - BatchRemainder: Builds as many exact-quota rounds as the roster supports, then
//     distributes the leftover capacity into best-effort partial rounds (recommended)
//   - PriorityGreedy: Places each participant's slots first-fit into the earliest round
//     with room, in priority order
//
// # Role Quotas
//
// A complete round of capacity C holds C/4 mercy, C/2 dps1 and C/4 dps2 slots.
// C must be a positive multiple of 4; CalculateQuota rejects anything else with
// types.ErrInvalidCapacity.
//
// # Priority Order
//
// Both strategies start from Normalize, which deep-copies the roster and orders
// it by total committed capacity (highest first, ties by input order). Participants
// who committed more slots are placed into earlier rounds first.
//
// # Strategy Selection Guide
//
// BatchRemainder:
//   - Use when full rounds must have an exact team composition
//   - Uneven leftovers land in trailing partial rounds
//
// PriorityGreedy:
//   - Use to reproduce the legacy first-fit layout
//   - Round composition is only bounded (size, mercy), not exact
//
// Custom strategies can be implemented by satisfying the types.ScheduleStrategy interface.
package strategy
