// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package elo

import (
	"errors"
	"math"
)

var (
	ErrSameItem      = errors.New("distinct items required")
	ErrInvalidRating = errors.New("rating value is not finite")
)

// K-factor tiers, selected per player from that player's own comparison
// count before the current comparison.
const (
	kProvisional = 40.0 // count <= 10: fast convergence for new items
	kEstablished = 20.0 // 11 <= count <= 30
	kStable      = 10.0 // count > 30

	provisionalMax = 10
	establishedMax = 30
)

// Rating is one item's rating state for a single (user, group) scope.
type Rating struct {
	ItemID      string
	Score       float64
	Comparisons int
}

// UpdateRatings computes new rating states for a winner/loser pair.
//
// Standard Elo: expected score 1/(1+10^((Rb-Ra)/400)), actual score 1 for
// the winner and 0 for the loser, step size from the tiered K-factor.
// Resulting scores are rounded to exactly 4 decimal places and both
// comparison counts increment by 1. Pure and deterministic; the caller
// persists the result.
func UpdateRatings(winner, loser Rating) (Rating, Rating, error) {
	if winner.ItemID == loser.ItemID {
		return Rating{}, Rating{}, ErrSameItem
	}
	if !isFinite(winner.Score) || !isFinite(loser.Score) {
		return Rating{}, Rating{}, ErrInvalidRating
	}

	expectedWinner := expectedScore(winner.Score, loser.Score)
	expectedLoser := expectedScore(loser.Score, winner.Score)

	newWinner := Rating{
		ItemID:      winner.ItemID,
		Score:       round4(winner.Score + kFactor(winner.Comparisons)*(1.0-expectedWinner)),
		Comparisons: winner.Comparisons + 1,
	}
	newLoser := Rating{
		ItemID:      loser.ItemID,
		Score:       round4(loser.Score + kFactor(loser.Comparisons)*(0.0-expectedLoser)),
		Comparisons: loser.Comparisons + 1,
	}

	return newWinner, newLoser, nil
}

// expectedScore is the probability model's prediction that a player rated
// ratingA beats a player rated ratingB.
func expectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, (ratingB-ratingA)/400.0))
}

// kFactor picks the step-size tier from a player's pre-comparison count.
func kFactor(comparisons int) float64 {
	switch {
	case comparisons <= provisionalMax:
		return kProvisional
	case comparisons <= establishedMax:
		return kEstablished
	default:
		return kStable
	}
}

// round4 rounds half away from zero to 4 decimal places.
func round4(v float64) float64 {
	return math.Round(v*10000.0) / 10000.0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
