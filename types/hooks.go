package types

import "context"

// Hooks defines callbacks for Scheduler events.
//
// All hooks are optional and run synchronously on the calling goroutine
// after the schedule has been built.
//
// Hook execution behavior:
//   - Hook errors are logged but don't fail the scheduling call
//   - The context passed to hooks is the caller's context
//
// Example:
//
//	hooks := &rota.Hooks{
//	    OnScheduleBuilt: func(ctx context.Context, activity string, result rota.ScheduleResult) error {
//	        return exporter.Render(ctx, activity, result)
//	    },
//	}
type Hooks struct {
	// OnScheduleBuilt is called after a schedule was built (or served from cache).
	OnScheduleBuilt func(ctx context.Context, activity string, result ScheduleResult) error

	// OnError is called when a scheduling call fails.
	OnError func(ctx context.Context, err error) error
}
