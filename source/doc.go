// Package source provides built-in roster source implementations.
//
// Roster sources return the participants signed up for an activity window.
// The package includes:
//
//   - Static: In-memory rosters, for tests and file-driven tools
//   - KV: Sign-ups stored in a NATS JetStream KeyValue bucket
//
// Custom sources can be implemented by satisfying the types.RosterSource interface.
package source
