// Package hash computes stable xxh3 fingerprints of rosters and schedules.
package hash

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/rota/types"
)

// Roster returns a 64-bit fingerprint of a roster scheduled at the given capacity.
//
// Every field that can influence a schedule is folded in, including input order,
// so two rosters share a fingerprint only if a deterministic strategy would
// produce the same result for both.
//
// Parameters:
//   - participants: Roster in source order
//   - capacity: Team capacity
//
// Returns:
//   - uint64: Fingerprint value
func Roster(participants []types.Participant, capacity int) uint64 {
	h := foldInt(0, capacity)
	h = foldInt(h, len(participants))

	for _, p := range participants {
		h = foldString(h, p.ID)
		h = foldString(h, p.Name)
		h = foldInt(h, p.DPS1Capacity)
		h = foldInt(h, p.DPS2Capacity)
		h = foldInt(h, p.MercyCapacity)
		h = foldString(h, p.Note)

		days := make([]string, 0, len(p.Days))
		for day, ok := range p.Days {
			if ok {
				days = append(days, day)
			}
		}
		slices.Sort(days)

		h = foldInt(h, len(days))
		for _, day := range days {
			h = foldString(h, day)
		}
	}

	return h
}

// Schedule returns a 64-bit fingerprint of a schedule result.
func Schedule(result types.ScheduleResult) uint64 {
	h := foldInt(0, result.Capacity)
	h = foldInt(h, len(result.Rounds))

	for _, r := range result.Rounds {
		h = foldInt(h, len(r.Assignments))
		for _, a := range r.Assignments {
			h = foldString(h, a.ParticipantID)
			h = foldString(h, string(a.Role))
		}
	}

	return h
}

// Hex formats a fingerprint as a fixed-width hexadecimal string.
func Hex(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

// foldString hashes s using the running hash as seed. The length is folded
// first so adjacent strings cannot run together.
func foldString(h uint64, s string) uint64 {
	h = foldInt(h, len(s))

	return xxh3.HashStringSeed(s, h)
}

func foldInt(h uint64, v int) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v)) //nolint:gosec // sign is irrelevant for hashing

	return xxh3.HashSeed(b[:], h)
}
