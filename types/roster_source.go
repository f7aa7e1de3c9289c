package types

import "context"

// RosterSource provides the participants signed up for an activity in a scheduling window.
//
// Implementations can query various backends:
//   - NATS KV: sign-up records keyed by activity and window
//   - Static: fixed list for testing
//   - Custom: database or spreadsheet import
//
// Capacity values are decided by the record layer; the scheduler uses them as-is.
type RosterSource interface {
	// ListParticipants returns the roster for the activity and window.
	//
	// Implementations should return participants in a stable order, since
	// strategies break priority ties by input order.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - activity: Activity name (e.g., "valtan")
	//   - window: Window key (start date, "2006-01-02")
	//
	// Returns:
	//   - []Participant: Signed-up participants (empty when nobody signed up)
	//   - error: Lookup error (nil on success)
	ListParticipants(ctx context.Context, activity, window string) ([]Participant, error)
}

// SchedulePublisher hands a built schedule to downstream consumers (renderers, exporters).
type SchedulePublisher interface {
	// Publish stores or forwards the schedule for the activity and window.
	Publish(ctx context.Context, activity, window string, result ScheduleResult) error
}
