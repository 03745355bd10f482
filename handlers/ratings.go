// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"math/rand/v2"

	"github.com/danielhkuo/duelrank/cliparse"
	"github.com/danielhkuo/duelrank/elo"
)

// RatingHandler serves the rating-centric operations: next-matchup
// selection, comparison recording, and per-user rankings.
type RatingHandler struct {
	db  *sql.DB
	cfg cliparse.Config

	// newRand supplies the randomness source for matchup selection.
	// Tests override it with a seeded source.
	newRand func() *rand.Rand
}

func NewRatingHandler(db *sql.DB, cfg cliparse.Config) *RatingHandler {
	return &RatingHandler{
		db:  db,
		cfg: cfg,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

func (h *RatingHandler) selectorConfig() elo.SelectorConfig {
	return elo.SelectorConfig{
		LowHistoryThreshold: h.cfg.LowHistoryThreshold,
		DiscoveryRate:       h.cfg.DiscoveryRate,
	}
}

// ratedItem is one group item annotated with the requesting user's rating
// state. Items the user never compared carry the base rating and a zero
// count without any row existing for them.
type ratedItem struct {
	elo.Rating
	Name string
}

// loadUserGroupRatings returns every item in the group from one user's
// point of view, defaulting absent rating rows to the base rating.
func loadUserGroupRatings(db *sql.DB, userID, groupID string, baseRating float64) ([]ratedItem, error) {
	rows, err := db.Query(`
		SELECT i.id, i.name, COALESCE(r.rating, $1), COALESCE(r.comparison_count, 0)
		FROM item i
		JOIN group_item gi ON gi.item_id = i.id
		LEFT JOIN item_rating r
			ON r.item_id = i.id AND r.group_id = gi.group_id AND r.user_id = $2
		WHERE gi.group_id = $3
		ORDER BY i.created_at, i.id
	`, baseRating, userID, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ratedItem{}
	for rows.Next() {
		var it ratedItem
		if err := rows.Scan(&it.ItemID, &it.Name, &it.Score, &it.Comparisons); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// itemInGroup reports whether the item belongs to the group.
func itemInGroup(db *sql.DB, groupID, itemID string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM group_item
			WHERE group_id = $1 AND item_id = $2
		)
	`, groupID, itemID).Scan(&exists)
	return exists, err
}
