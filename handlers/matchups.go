// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/duelrank/elo"
	"github.com/danielhkuo/duelrank/middleware"
	"github.com/danielhkuo/duelrank/models"
)

// GetMatchup handles GET /groups/{id}/matchup
// Picks the next pair of items the authenticated user should compare.
// A group with fewer than two items yields an empty matchup, not an error.
func (h *RatingHandler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	user, ok := requireMembership(w, r, h.db, groupID)
	if !ok {
		return
	}

	items, err := loadUserGroupRatings(h.db, user.ID, groupID, h.cfg.BaseRating)
	if err != nil {
		slog.Error("failed to load group ratings", "error", err, "group_id", groupID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	names := make(map[string]string, len(items))
	ratings := make([]elo.Rating, len(items))
	for i, it := range items {
		names[it.ItemID] = it.Name
		ratings[i] = it.Rating
	}

	m := elo.SelectMatchup(ratings, h.newRand(), h.selectorConfig())
	if m == nil {
		middleware.JSONResponse(w, http.StatusOK, models.MatchupResponse{
			Available: false,
			Message:   "Add more items to start comparing",
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MatchupResponse{
		Available: true,
		Left:      matchupSide(m.Left, names),
		Right:     matchupSide(m.Right, names),
	})
}

func matchupSide(r elo.Rating, names map[string]string) *models.MatchupSide {
	return &models.MatchupSide{
		ItemID:      r.ItemID,
		Name:        names[r.ItemID],
		Rating:      r.Score,
		Comparisons: r.Comparisons,
	}
}
