// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package elo implements the rating engine and matchup selector.

Both components are pure: they perform no I/O, hold no shared state, and
are safe to call concurrently. Persistence and locking belong to the
handlers that call them.

# Rating Engine

UpdateRatings applies one comparison outcome to a winner/loser pair:

	newWinner, newLoser, err := elo.UpdateRatings(winner, loser)

The engine uses the standard Elo expected-score model with a tiered
K-factor chosen independently per player from that player's own
comparison count before the comparison:

	count <= 10  → K = 40  (provisional)
	count 11-30  → K = 20  (established)
	count > 30   → K = 10  (stable)

New scores are rounded to exactly 4 decimal places and both comparison
counts increment by 1. Ratings are not clamped; convergence keeps them
bounded in practice because wins and losses offset.

# Matchup Selector

SelectMatchup picks the next pair to present from one user's view of a
group's items:

	m := elo.SelectMatchup(items, rng, elo.DefaultSelectorConfig())
	if m == nil {
		// fewer than two items: ask the user to add more
	}

Tiers are evaluated in strict priority order: cold-start (two random
low-history items), discovery (lowest vs highest rating, probability
DiscoveryRate), competitive (adjacent pair with minimum rating gap).
The chosen pair is assigned to left/right slots with a fair coin flip.

Randomness is drawn only from the injected math/rand/v2 source, so tests
can seed it and reproduce selection decisions exactly.
*/
package elo
