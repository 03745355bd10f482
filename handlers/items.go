// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/duelrank/auth"
	"github.com/danielhkuo/duelrank/cliparse"
	"github.com/danielhkuo/duelrank/db"
	"github.com/danielhkuo/duelrank/middleware"
	"github.com/danielhkuo/duelrank/models"
)

type ItemHandler struct {
	db         *sql.DB
	cfg        cliparse.Config
	categories *db.CategoryResolver
}

func NewItemHandler(conn *sql.DB, cfg cliparse.Config) *ItemHandler {
	return &ItemHandler{db: conn, cfg: cfg, categories: &db.CategoryResolver{}}
}

// AddItem handles POST /groups/{id}/items
// Adds an item to a group; requires the group admin key
func (h *ItemHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if !h.requireGroupAdmin(w, r, groupID) {
		return
	}

	var req models.AddItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	itemID, _, err := h.ensureGroupItem(groupID, req.Name, req.Category)
	if err != nil {
		slog.Error("failed to add item", "error", err, "group_id", groupID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add item")
		return
	}

	slog.Info("item added", "group_id", groupID, "item_id", itemID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddItemResponse{
		ItemID: itemID,
	})
}

// ImportItems handles POST /groups/{id}/items/import
// Bulk-loads items from a CSV body with columns: name[,category].
// Re-importing the same file is idempotent.
func (h *ItemHandler) ImportItems(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if !h.requireGroupAdmin(w, r, groupID) {
		return
	}

	defer r.Body.Close()
	reader := csv.NewReader(r.Body)
	reader.FieldsPerRecord = -1 // category column is optional per row

	imported, skipped := 0, 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid CSV: "+err.Error())
			return
		}

		name := strings.TrimSpace(record[0])
		if name == "" || strings.EqualFold(name, "name") {
			// blank line or header row
			skipped++
			continue
		}
		category := ""
		if len(record) > 1 {
			category = strings.TrimSpace(record[1])
		}

		_, added, err := h.ensureGroupItem(groupID, name, category)
		if err != nil {
			slog.Error("failed to import item", "error", err, "group_id", groupID, "name", name)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to import items")
			return
		}
		if added {
			imported++
		} else {
			skipped++
		}
	}

	slog.Info("items imported", "group_id", groupID, "imported", imported, "skipped", skipped)

	middleware.JSONResponse(w, http.StatusCreated, models.ImportItemsResponse{
		Imported: imported,
		Skipped:  skipped,
		Message:  fmt.Sprintf("Imported %s items (%s skipped)", humanize.Comma(int64(imported)), humanize.Comma(int64(skipped))),
	})
}

// requireGroupAdmin verifies the group exists and the X-Admin-Key header
// matches it, writing the error response itself on failure.
func (h *ItemHandler) requireGroupAdmin(w http.ResponseWriter, r *http.Request, groupID string) bool {
	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM item_group WHERE id = $1)
	`, groupID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return false
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if adminKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Admin-Key header required")
		return false
	}
	if err := auth.ValidateAdminKey(groupID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "Invalid admin key")
		return false
	}

	return true
}

// ensureGroupItem creates the item if needed and links it to the group.
// Returns the item ID and whether a new group link was created.
func (h *ItemHandler) ensureGroupItem(groupID, name, category string) (string, bool, error) {
	var categoryID string
	var err error
	if category == "" {
		categoryID, err = h.categories.DefaultID(h.db)
	} else {
		categoryID, err = db.ResolveCategory(h.db, category)
	}
	if err != nil {
		return "", false, err
	}

	// Insert-if-absent, then read the canonical ID back. Items are shared
	// across groups, so an existing (name, category) row is reused.
	_, err = h.db.Exec(`
		INSERT INTO item (id, name, category_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name, category_id) DO NOTHING
	`, uuid.NewString(), name, categoryID, time.Now())
	if err != nil {
		return "", false, fmt.Errorf("failed to insert item: %w", err)
	}

	var itemID string
	err = h.db.QueryRow(`
		SELECT id FROM item WHERE name = $1 AND category_id = $2
	`, name, categoryID).Scan(&itemID)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve item: %w", err)
	}

	res, err := h.db.Exec(`
		INSERT INTO group_item (group_id, item_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, item_id) DO NOTHING
	`, groupID, itemID)
	if err != nil {
		return "", false, fmt.Errorf("failed to link item to group: %w", err)
	}

	added := false
	if n, err := res.RowsAffected(); err == nil {
		added = n > 0
	}

	return itemID, added, nil
}
