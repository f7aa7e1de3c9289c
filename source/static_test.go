package source

import (
	"context"
	"testing"

	"github.com/arloliu/rota/types"
	"github.com/stretchr/testify/require"
)

func TestStatic_ListParticipants(t *testing.T) {
	ctx := context.Background()
	roster := []types.Participant{
		{ID: "1", Name: "a", DPS1Capacity: 2, Days: map[string]bool{"三": true}},
		{ID: "2", Name: "b", MercyCapacity: 1},
	}

	t.Run("serves the default roster for any window", func(t *testing.T) {
		src := NewStatic(roster)

		got, err := src.ListParticipants(ctx, "raid", "2024-01-03")
		require.NoError(t, err)
		require.Equal(t, roster, got)

		got, err = src.ListParticipants(ctx, "dungeon", "2024-01-10")
		require.NoError(t, err)
		require.Equal(t, roster, got)
	})

	t.Run("returns empty roster when nothing is configured", func(t *testing.T) {
		src := NewStatic(nil)

		got, err := src.ListParticipants(ctx, "raid", "2024-01-03")
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("per-window roster overrides the default", func(t *testing.T) {
		src := NewStatic(roster)
		src.Set("raid", "2024-01-03", roster[:1])

		got, err := src.ListParticipants(ctx, "raid", "2024-01-03")
		require.NoError(t, err)
		require.Len(t, got, 1)

		got, err = src.ListParticipants(ctx, "raid", "2024-01-10")
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("returned rosters are deep copies", func(t *testing.T) {
		src := NewStatic(roster)

		got, err := src.ListParticipants(ctx, "raid", "w")
		require.NoError(t, err)
		got[0].DPS1Capacity = 99
		got[0].Days["日"] = true

		again, err := src.ListParticipants(ctx, "raid", "w")
		require.NoError(t, err)
		require.Equal(t, 2, again[0].DPS1Capacity)
		require.False(t, again[0].Days["日"])
	})

	t.Run("does not alias the caller's slice", func(t *testing.T) {
		input := []types.Participant{{ID: "1", DPS1Capacity: 1}}
		src := NewStatic(input)
		input[0].DPS1Capacity = 5

		got, err := src.ListParticipants(ctx, "raid", "w")
		require.NoError(t, err)
		require.Equal(t, 1, got[0].DPS1Capacity)
	})
}

func TestStatic_Update(t *testing.T) {
	src := NewStatic([]types.Participant{{ID: "1"}})
	src.Update([]types.Participant{{ID: "1"}, {ID: "2"}})

	got, err := src.ListParticipants(context.Background(), "raid", "w")
	require.NoError(t, err)
	require.Len(t, got, 2)
}
