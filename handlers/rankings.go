// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/danielhkuo/duelrank/middleware"
	"github.com/danielhkuo/duelrank/models"
)

// GetRankings handles GET /groups/{id}/rankings
// Returns the group's items ordered by the authenticated user's ratings.
// Never-compared items appear at the base rating with zero comparisons.
func (h *RatingHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
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

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]

		// 1. Higher rating wins
		if a.Score != b.Score {
			return a.Score > b.Score
		}

		// 2. More comparisons means better-established; rank it first
		if a.Comparisons != b.Comparisons {
			return a.Comparisons > b.Comparisons
		}

		// 3. Stable tie-breaking by item ID (ascending)
		return a.ItemID < b.ItemID
	})

	rankings := make([]models.ItemRanking, len(items))
	for i, it := range items {
		rankings[i] = models.ItemRanking{
			ItemID:      it.ItemID,
			Name:        it.Name,
			Rating:      it.Score,
			Comparisons: it.Comparisons,
			Rank:        i + 1, // 1-indexed ranking
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.RankingsResponse{
		GroupID:  groupID,
		Rankings: rankings,
	})
}
