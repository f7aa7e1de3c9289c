package source

import (
	"context"
	"sync"

	"github.com/arloliu/rota/types"
)

// Static implements a roster source backed by in-memory rosters.
//
// A default roster is served for every activity window unless a roster was
// set for that specific (activity, window) pair.
type Static struct {
	mu       sync.RWMutex
	fallback []types.Participant
	rosters  map[staticKey][]types.Participant
}

type staticKey struct {
	activity string
	window   string
}

var _ types.RosterSource = (*Static)(nil)

// NewStatic creates a new static roster source.
//
// Parameters:
//   - participants: Default roster served for every activity window (may be nil)
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic([]types.Participant{
//	    {ID: "1001", Name: "Ayla", DPS1Capacity: 2, MercyCapacity: 1},
//	    {ID: "1002", Name: "Bram", DPS2Capacity: 3},
//	})
//	sched, err := rota.NewScheduler(&cfg, src, strategy.NewBatchRemainder())
func NewStatic(participants []types.Participant) *Static {
	return &Static{
		fallback: cloneParticipants(participants),
		rosters:  make(map[staticKey][]types.Participant),
	}
}

// ListParticipants returns a deep copy of the roster for the activity window.
//
// Returns:
//   - []types.Participant: Roster in the order it was supplied
//   - error: Always nil (never fails)
func (s *Static) ListParticipants(_ context.Context, activity, window string) ([]types.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if roster, ok := s.rosters[staticKey{activity: activity, window: window}]; ok {
		return cloneParticipants(roster), nil
	}

	return cloneParticipants(s.fallback), nil
}

// Update replaces the default roster.
func (s *Static) Update(participants []types.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fallback = cloneParticipants(participants)
}

// Set replaces the roster of one activity window.
//
// Parameters:
//   - activity: Activity name
//   - window: Window key (see window.Window.Key)
//   - participants: Roster for that window
func (s *Static) Set(activity, window string, participants []types.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rosters[staticKey{activity: activity, window: window}] = cloneParticipants(participants)
}

func cloneParticipants(participants []types.Participant) []types.Participant {
	if participants == nil {
		return nil
	}

	out := make([]types.Participant, len(participants))
	for i, p := range participants {
		out[i] = p.Clone()
	}

	return out
}
