package normalize

import "math"

const (
	// dollarsPerParticipant is the rough volume-to-headcount heuristic.
	dollarsPerParticipant = 500

	// trendingWeeklyVolume is the weekly volume above which a market is
	// flagged as trending regardless of the featured bit.
	trendingWeeklyVolume = 1_000_000
)

// EstimateParticipants approximates how many traders a market has from the
// explicit comment count and a volume heuristic, whichever is larger. The
// result is never negative.
func EstimateParticipants(commentCount int, volume float64) int {
	fromVolume := int(math.Round(volume / dollarsPerParticipant))
	if commentCount > fromVolume {
		if commentCount < 0 {
			return 0
		}
		return commentCount
	}
	if fromVolume < 0 {
		return 0
	}
	return fromVolume
}

// Trending reports whether a market should be surfaced as trending, from
// the weekly volume threshold or the upstream featured flag.
func Trending(volume1wk float64, featured bool) bool {
	return volume1wk > trendingWeeklyVolume || featured
}
