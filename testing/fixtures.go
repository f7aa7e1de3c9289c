package testing

import (
	"fmt"

	"github.com/arloliu/rota/types"
)

// Participant builds a participant whose ID doubles as its display name.
func Participant(id string, dps1, dps2, mercy int) types.Participant {
	return types.Participant{
		ID:            id,
		Name:          id,
		DPS1Capacity:  dps1,
		DPS2Capacity:  dps2,
		MercyCapacity: mercy,
	}
}

// Roster builds n participants named p01, p02, ... each offering the given
// per-role capacities.
func Roster(n, dps1, dps2, mercy int) []types.Participant {
	out := make([]types.Participant, 0, n)
	for i := range n {
		out = append(out, Participant(fmt.Sprintf("p%02d", i+1), dps1, dps2, mercy))
	}

	return out
}
