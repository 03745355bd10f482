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

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// Register handles POST /users/register
// Creates a user and returns the secret token identifying them
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.DisplayName) < 2 || len(req.DisplayName) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name must be 2-50 characters")
		return
	}

	token, err := auth.GenerateUserToken()
	if err != nil {
		slog.Error("failed to generate user token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	userID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO app_user (id, token, display_name, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, token, req.DisplayName, time.Now())

	if err != nil {
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	slog.Info("user registered", "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterUserResponse{
		UserID:    userID,
		UserToken: token,
	})
}

// GetMe handles GET /users/me
// Returns the authenticated user's info
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.db)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

// GetMyGroups handles GET /users/my-groups
// Lists the groups the authenticated user belongs to
func (h *UserHandler) GetMyGroups(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.db)
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT g.id, g.name, g.creator_id, g.invite_slug, g.created_at
		FROM item_group g
		JOIN group_member m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.created_at DESC
	`, user.ID)
	if err != nil {
		slog.Error("failed to query user groups", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatorID, &g.InviteSlug, &g.CreatedAt); err != nil {
			slog.Error("failed to scan group", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		groups = append(groups, g)
	}

	middleware.JSONResponse(w, http.StatusOK, groups)
}

// requireUser authenticates the X-User-Token header and writes the error
// response itself when authentication fails.
func requireUser(w http.ResponseWriter, r *http.Request, db *sql.DB) (models.User, bool) {
	token := r.Header.Get("X-User-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User-Token header required")
		return models.User{}, false
	}

	var user models.User
	err := db.QueryRow(`
		SELECT id, token, display_name, created_at
		FROM app_user
		WHERE token = $1
	`, token).Scan(&user.ID, &user.Token, &user.DisplayName, &user.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid user token")
		return models.User{}, false
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.User{}, false
	}

	return user, true
}

// isGroupMember reports whether the user belongs to the group.
func isGroupMember(db *sql.DB, groupID, userID string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM group_member
			WHERE group_id = $1 AND user_id = $2
		)
	`, groupID, userID).Scan(&exists)
	return exists, err
}

// requireMembership authenticates the user and verifies group membership,
// writing the error response itself on failure.
func requireMembership(w http.ResponseWriter, r *http.Request, db *sql.DB, groupID string) (models.User, bool) {
	user, ok := requireUser(w, r, db)
	if !ok {
		return models.User{}, false
	}

	member, err := isGroupMember(db, groupID, user.ID)
	if err != nil {
		slog.Error("failed to check group membership", "error", err, "group_id", groupID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.User{}, false
	}
	if !member {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not a member of this group")
		return models.User{}, false
	}

	return user, true
}
