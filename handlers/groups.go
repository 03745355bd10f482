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
	"github.com/danielhkuo/duelrank/cliparse"
	"github.com/danielhkuo/duelrank/middleware"
	"github.com/danielhkuo/duelrank/models"
)

type GroupHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewGroupHandler(db *sql.DB, cfg cliparse.Config) *GroupHandler {
	return &GroupHandler{db: db, cfg: cfg}
}

// CreateGroup handles POST /groups
// Creates a group, auto-joins the creator, and returns the admin key and
// invite slug
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.db)
	if !ok {
		return
	}

	var req models.CreateGroupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Name) > 100 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must be at most 100 characters")
		return
	}

	groupID := uuid.NewString()
	inviteSlug := auth.GenerateInviteSlug(groupID, h.cfg.InviteSalt)
	adminKey := auth.GenerateAdminKey(groupID, h.cfg.AdminKeySalt)

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.Exec(`
		INSERT INTO item_group (id, name, creator_id, invite_slug, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, groupID, req.Name, user.ID, inviteSlug, now)
	if err != nil {
		slog.Error("failed to insert group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create group")
		return
	}

	// Creator joins immediately
	_, err = tx.Exec(`
		INSERT INTO group_member (group_id, user_id, joined_at)
		VALUES ($1, $2, $3)
	`, groupID, user.ID, now)
	if err != nil {
		slog.Error("failed to insert creator membership", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create group")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create group")
		return
	}

	slog.Info("group created", "group_id", groupID, "creator_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateGroupResponse{
		GroupID:    groupID,
		AdminKey:   adminKey,
		InviteSlug: inviteSlug,
	})
}

// JoinGroup handles POST /groups/{slug}/join
// Adds the authenticated user to the group behind an invite slug
func (h *GroupHandler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	inviteSlug := r.PathValue("slug")
	if inviteSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	user, ok := requireUser(w, r, h.db)
	if !ok {
		return
	}

	var groupID, name string
	err := h.db.QueryRow(`
		SELECT id, name FROM item_group WHERE invite_slug = $1
	`, inviteSlug).Scan(&groupID, &name)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to query group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Joining twice is a no-op
	_, err = h.db.Exec(`
		INSERT INTO group_member (group_id, user_id, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`, groupID, user.ID, time.Now())
	if err != nil {
		slog.Error("failed to insert membership", "error", err, "group_id", groupID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join group")
		return
	}

	slog.Info("user joined group", "group_id", groupID, "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.JoinGroupResponse{
		GroupID: groupID,
		Name:    name,
	})
}

// GetGroup handles GET /groups/{id}
// Returns group details and its items; members only
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if _, ok := requireMembership(w, r, h.db, groupID); !ok {
		return
	}

	var group models.Group
	err := h.db.QueryRow(`
		SELECT id, name, creator_id, invite_slug, created_at
		FROM item_group
		WHERE id = $1
	`, groupID).Scan(&group.ID, &group.Name, &group.CreatorID, &group.InviteSlug, &group.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to query group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	items, err := getGroupItems(h.db, groupID)
	if err != nil {
		slog.Error("failed to query group items", "error", err, "group_id", groupID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GroupWithItems{
		Group: group,
		Items: items,
	})
}

// getGroupItems returns all items belonging to a group.
func getGroupItems(db *sql.DB, groupID string) ([]models.Item, error) {
	rows, err := db.Query(`
		SELECT i.id, i.name, c.name, i.created_at
		FROM item i
		JOIN group_item gi ON gi.item_id = i.id
		JOIN category c ON c.id = i.category_id
		WHERE gi.group_id = $1
		ORDER BY i.created_at, i.id
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}
