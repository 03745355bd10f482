// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package elo

import (
	"math/rand/v2"
	"sort"
)

// SelectorConfig holds the matchup selection policy knobs.
type SelectorConfig struct {
	// LowHistoryThreshold is the comparison count below which an item is
	// still considered cold-start.
	LowHistoryThreshold int
	// DiscoveryRate is the probability of a wide-gap discovery pairing
	// once the cold-start tier no longer applies.
	DiscoveryRate float64
}

// DefaultSelectorConfig returns the standard policy parameters.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		LowHistoryThreshold: 5,
		DiscoveryRate:       0.15,
	}
}

// Matchup is a chosen pair of items in presentation order.
type Matchup struct {
	Left  Rating
	Right Rating
}

// SelectMatchup chooses the next pair of items to compare from one user's
// view of a group. Policy tiers, in strict priority order:
//
//  1. Cold-start: if at least two items have fewer comparisons than
//     LowHistoryThreshold, pick two distinct low-history items uniformly
//     at random.
//  2. Discovery: with probability DiscoveryRate, pair the lowest-rated
//     item with the highest-rated item.
//  3. Competitive: pair the adjacent items (by ascending rating) with the
//     minimum rating gap; ties go to the first occurrence in scan order.
//
// The chosen pair lands in left/right slots with 50/50 probability so
// presentation position carries no rating signal. With exactly two items
// the only possible pair is returned without consuming randomness. Fewer
// than two items yields nil, a normal "need more items" outcome.
//
// The input slice is not mutated. All randomness comes from rng so callers
// can seed selection deterministically.
func SelectMatchup(items []Rating, rng *rand.Rand, cfg SelectorConfig) *Matchup {
	switch len(items) {
	case 0, 1:
		return nil
	case 2:
		return &Matchup{Left: items[0], Right: items[1]}
	}

	var lowHistory []Rating
	for _, it := range items {
		if it.Comparisons < cfg.LowHistoryThreshold {
			lowHistory = append(lowHistory, it)
		}
	}
	if len(lowHistory) >= 2 {
		a, b := drawDistinctPair(lowHistory, rng)
		return orient(a, b, rng)
	}

	byScore := make([]Rating, len(items))
	copy(byScore, items)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].Score < byScore[j].Score
	})

	if rng.Float64() < cfg.DiscoveryRate {
		return orient(byScore[0], byScore[len(byScore)-1], rng)
	}

	best := 0
	bestGap := byScore[1].Score - byScore[0].Score
	for i := 1; i < len(byScore)-1; i++ {
		if gap := byScore[i+1].Score - byScore[i].Score; gap < bestGap {
			best, bestGap = i, gap
		}
	}
	return orient(byScore[best], byScore[best+1], rng)
}

// drawDistinctPair picks two distinct elements uniformly at random.
func drawDistinctPair(pool []Rating, rng *rand.Rand) (Rating, Rating) {
	i := rng.IntN(len(pool))
	j := rng.IntN(len(pool) - 1)
	if j >= i {
		j++
	}
	return pool[i], pool[j]
}

// orient assigns the pair to presentation slots with a fair coin flip.
func orient(a, b Rating, rng *rand.Rand) *Matchup {
	if rng.IntN(2) == 1 {
		a, b = b, a
	}
	return &Matchup{Left: a, Right: b}
}
