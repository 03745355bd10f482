// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the DuelRank API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: Registration and account lookups
  - GroupHandler: Group creation, joining, and detail views
  - ItemHandler: Adding items and bulk CSV import (admin)
  - RatingHandler: Matchup selection, comparison recording, rankings

Handlers are created via constructor functions that accept *sql.DB and Config:

	ratingHandler := handlers.NewRatingHandler(db, cfg)

# User Flow

Users register once and authenticate with the returned token:

	POST /users/register   → Register (returns user_token)
	GET /users/me          → GetMe
	GET /users/my-groups   → GetMyGroups

Authenticated operations require the X-User-Token header.

# Group Flow

Groups are created by any user and joined via invite slug:

	POST /groups              → CreateGroup (returns admin_key, invite_slug)
	POST /groups/{slug}/join  → JoinGroup
	GET /groups/{id}          → GetGroup (members only)

Item management requires the X-Admin-Key header:

	POST /groups/{id}/items        → AddItem
	POST /groups/{id}/items/import → ImportItems (CSV body)

# Rating Flow

Ratings are scoped per (user, group, item): every member ranks the same
items independently.

	GET /groups/{id}/matchup      → GetMatchup (next pair to compare)
	POST /groups/{id}/comparisons → RecordComparison (winner/loser outcome)
	GET /groups/{id}/rankings     → GetRankings (sorted by rating)

The rating math and matchup policy live in the elo package:

	newWinner, newLoser, err := elo.UpdateRatings(winner, loser)
	m := elo.SelectMatchup(items, rng, cfg)
*/
package handlers
