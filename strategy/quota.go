package strategy

import (
	"fmt"

	"github.com/arloliu/rota/types"
)

// CalculateQuota derives the per-role slot counts of a complete round.
//
// Parameters:
//   - capacity: Team size configured for the activity
//
// Returns:
//   - types.RoleQuota: capacity/4 mercy, capacity/2 dps1, capacity/4 dps2
//   - error: types.ErrInvalidCapacity if capacity is not a positive multiple of 4
//
// Example:
//
//	quota, err := strategy.CalculateQuota(8) // {Mercy: 2, DPS1: 4, DPS2: 2}
func CalculateQuota(capacity int) (types.RoleQuota, error) {
	if capacity <= 0 {
		return types.RoleQuota{}, fmt.Errorf("%w: capacity must be positive, got %d", types.ErrInvalidCapacity, capacity)
	}
	if capacity%4 != 0 {
		return types.RoleQuota{}, fmt.Errorf("%w: capacity %d is not a multiple of 4", types.ErrInvalidCapacity, capacity)
	}

	return types.RoleQuota{
		Mercy: capacity / 4,
		DPS1:  capacity / 2,
		DPS2:  capacity / 4,
	}, nil
}
