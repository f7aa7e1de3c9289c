// Package types provides core type definitions and interfaces for the Rota library.
//
// This package contains shared types that are used across multiple packages in the
// Rota library. By keeping these types in a separate package, we avoid import cycles
// between the main rota package and its strategy, source and publish implementations.
//
// Key types:
//   - Participant: Roster entry with per-role capacities
//   - Role: dps1, dps2 or mercy
//   - Round: Ordered list of assignments forming one team
//   - ScheduleResult: Ordered rounds produced by one scheduling run
//   - ScheduleStrategy: Round construction algorithm interface
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
