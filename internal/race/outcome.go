package race

import "slices"

// Outcome is the final standing of a race.
type Outcome struct {
	// PlayerRank is the 1-based position of the player's horse, or 0 when
	// the player has no finish record.
	PlayerRank int
	// Results are sorted by ascending finish time. Equal times keep their
	// crossing order.
	Results []Result
}

// Finalize orders results by finish time and locates the player's rank. The
// input slice is not modified.
func Finalize(results []Result, player int) Outcome {
	ordered := slices.Clone(results)
	slices.SortStableFunc(ordered, func(a, b Result) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})

	rank := 0
	for i, res := range ordered {
		if res.Agent == player {
			rank = i + 1
			break
		}
	}
	return Outcome{PlayerRank: rank, Results: ordered}
}
