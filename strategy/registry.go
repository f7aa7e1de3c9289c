package strategy

import (
	"fmt"
	"slices"

	"github.com/arloliu/rota/types"
)

// Registered strategy names, as used in configuration files.
const (
	NameBatchRemainder = "batch_remainder"
	NamePriorityGreedy = "priority_greedy"
)

var registry = map[string]func() types.ScheduleStrategy{
	NameBatchRemainder: func() types.ScheduleStrategy { return NewBatchRemainder() },
	NamePriorityGreedy: func() types.ScheduleStrategy { return NewPriorityGreedy() },
}

// ByName returns a new instance of the strategy registered under name.
//
// Parameters:
//   - name: Strategy name (NameBatchRemainder or NamePriorityGreedy)
//
// Returns:
//   - types.ScheduleStrategy: Strategy instance
//   - error: ErrUnknownStrategy if name is not registered
func ByName(name string) (types.ScheduleStrategy, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (must be one of: %v)", ErrUnknownStrategy, name, Names())
	}

	return ctor(), nil
}

// Names returns the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
