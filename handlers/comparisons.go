// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/duelrank/auth"
	"github.com/danielhkuo/duelrank/db"
	"github.com/danielhkuo/duelrank/elo"
	"github.com/danielhkuo/duelrank/middleware"
	"github.com/danielhkuo/duelrank/models"
)

// RecordComparison handles POST /groups/{id}/comparisons
// Applies one winner/loser outcome to the authenticated user's ratings.
// Both rating rows are created lazily, locked, updated through the rating
// engine, and persisted together with an audit row in one transaction.
func (h *RatingHandler) RecordComparison(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	user, ok := requireMembership(w, r, h.db, groupID)
	if !ok {
		return
	}

	var req models.RecordComparisonRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.WinnerItemID == "" || req.LoserItemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "winner_item_id and loser_item_id are required")
		return
	}
	if req.WinnerItemID == req.LoserItemID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "distinct items required")
		return
	}

	for _, itemID := range []string{req.WinnerItemID, req.LoserItemID} {
		inGroup, err := itemInGroup(h.db, groupID, itemID)
		if err != nil {
			slog.Error("failed to check item membership", "error", err, "group_id", groupID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if !inGroup {
			middleware.ErrorResponse(w, http.StatusNotFound, "Item not in group: "+itemID)
			return
		}
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Create missing rows at the base rating without touching existing ones,
	// then read both under lock. Locking in item-ID order keeps two
	// concurrent comparisons over the same pair from deadlocking.
	lockOrder := []string{req.WinnerItemID, req.LoserItemID}
	if lockOrder[1] < lockOrder[0] {
		lockOrder[0], lockOrder[1] = lockOrder[1], lockOrder[0]
	}

	states := make(map[string]elo.Rating, 2)
	for _, itemID := range lockOrder {
		state, err := lockRatingRow(tx, h.cfg.DatabaseType, user.ID, groupID, itemID, h.cfg.BaseRating)
		if err != nil {
			slog.Error("failed to lock rating row", "error", err, "group_id", groupID, "item_id", itemID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		states[itemID] = state
	}

	winner := states[req.WinnerItemID]
	loser := states[req.LoserItemID]

	newWinner, newLoser, err := elo.UpdateRatings(winner, loser)
	if err != nil {
		// Inputs were validated above; any engine error here is a bug.
		slog.Error("rating engine rejected input", "error", err, "group_id", groupID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record comparison")
		return
	}

	for _, state := range []elo.Rating{newWinner, newLoser} {
		_, err = tx.Exec(`
			UPDATE item_rating
			SET rating = $1, comparison_count = $2
			WHERE user_id = $3 AND group_id = $4 AND item_id = $5
		`, state.Score, state.Comparisons, user.ID, groupID, state.ItemID)
		if err != nil {
			slog.Error("failed to update rating row", "error", err, "item_id", state.ItemID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record comparison")
			return
		}
	}

	comparisonID := uuid.NewString()
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
	_, err = tx.Exec(`
		INSERT INTO comparison (id, group_id, user_id, winner_item_id, loser_item_id,
			winner_delta, loser_delta, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, comparisonID, groupID, user.ID, req.WinnerItemID, req.LoserItemID,
		newWinner.Score-winner.Score, newLoser.Score-loser.Score, ipHash, time.Now())
	if err != nil {
		slog.Error("failed to insert comparison", "error", err, "group_id", groupID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record comparison")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record comparison")
		return
	}

	slog.Info("comparison recorded",
		"comparison_id", comparisonID,
		"group_id", groupID,
		"user_id", user.ID,
		"winner", req.WinnerItemID,
		"loser", req.LoserItemID,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.RecordComparisonResponse{
		ComparisonID: comparisonID,
		Winner: models.RatingView{
			ItemID:      newWinner.ItemID,
			OldRating:   winner.Score,
			NewRating:   newWinner.Score,
			Comparisons: newWinner.Comparisons,
		},
		Loser: models.RatingView{
			ItemID:      newLoser.ItemID,
			OldRating:   loser.Score,
			NewRating:   newLoser.Score,
			Comparisons: newLoser.Comparisons,
		},
	})
}

// lockRatingRow creates the rating row at the base rating if absent, then
// reads it under the backend's row lock for the rest of the transaction.
func lockRatingRow(tx *sql.Tx, databaseType, userID, groupID, itemID string, baseRating float64) (elo.Rating, error) {
	_, err := tx.Exec(`
		INSERT INTO item_rating (user_id, group_id, item_id, rating, comparison_count)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (user_id, group_id, item_id) DO NOTHING
	`, userID, groupID, itemID, baseRating)
	if err != nil {
		return elo.Rating{}, err
	}

	state := elo.Rating{ItemID: itemID}
	err = tx.QueryRow(`
		SELECT rating, comparison_count
		FROM item_rating
		WHERE user_id = $1 AND group_id = $2 AND item_id = $3
	`+db.RowLockSuffix(databaseType), userID, groupID, itemID).Scan(&state.Score, &state.Comparisons)
	if err != nil {
		return elo.Rating{}, err
	}

	return state, nil
}
