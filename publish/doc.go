// Package publish stores built schedules where rendering and export
// collaborators can pick them up.
//
// KVPublisher writes one versioned Record per activity window to a NATS
// JetStream KeyValue bucket. Versions increase monotonically across process
// restarts once DiscoverHighestVersion has run.
package publish
