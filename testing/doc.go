// Package testing provides test utilities for the Rota library.
//
// It follows Go's convention of shipping testing helpers in a dedicated
// package (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single NATS server with JetStream
//   - CreateJetStreamKV: In-memory KV bucket for roster and schedule tests
//   - NewTestLogger: Logger writing through testing.T
//   - Participant, Roster: Roster fixtures
//
// Example usage:
//
//	import (
//	    "testing"
//	    rotatest "github.com/arloliu/rota/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    _, nc := rotatest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
