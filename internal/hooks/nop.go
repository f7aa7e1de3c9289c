// Package hooks provides default Hooks implementations.
package hooks

import (
	"context"

	"github.com/arloliu/rota/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default used when no custom hooks are provided, so callers
// never need nil checks on individual callbacks.
type NopHooks struct{}

var (
	_ func(context.Context, string, types.ScheduleResult) error = (*NopHooks)(nil).OnScheduleBuilt
	_ func(context.Context, error) error                        = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}

	return types.Hooks{
		OnScheduleBuilt: h.OnScheduleBuilt,
		OnError:         h.OnError,
	}
}

// Fill returns hooks with every nil callback replaced by its no-op version.
//
// Parameters:
//   - h: Caller-supplied hooks, may be nil
//
// Returns:
//   - types.Hooks: Hooks with no nil callbacks
func Fill(h *types.Hooks) types.Hooks {
	filled := NewNop()
	if h == nil {
		return filled
	}
	if h.OnScheduleBuilt != nil {
		filled.OnScheduleBuilt = h.OnScheduleBuilt
	}
	if h.OnError != nil {
		filled.OnError = h.OnError
	}

	return filled
}

// OnScheduleBuilt is a no-op implementation.
func (h *NopHooks) OnScheduleBuilt(_ context.Context, _ string, _ types.ScheduleResult) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ error) error {
	return nil
}
