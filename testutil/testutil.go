// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/duelrank/auth"
	"github.com/danielhkuo/duelrank/cliparse"
	"github.com/danielhkuo/duelrank/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full schema.
// Each test gets its own database; no cleanup between tests is needed.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:                3419,
		DatabaseURL:         ":memory:",
		DatabaseType:        "sqlite",
		AdminKeySalt:        "test-admin-salt",
		InviteSalt:          "test-invite-salt",
		BaseRating:          1200,
		LowHistoryThreshold: 5,
		DiscoveryRate:       0.15,
	}
}

// CreateTestUser creates a user and returns its ID and token
func CreateTestUser(t *testing.T, conn *sql.DB, displayName string) (userID, token string) {
	t.Helper()

	userID = uuid.NewString()
	token, err := auth.GenerateUserToken()
	if err != nil {
		t.Fatalf("Failed to generate user token: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO app_user (id, token, display_name, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, token, displayName, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID, token
}

// CreateTestGroup creates a group with the given creator as a member and
// returns its ID, admin key, and invite slug
func CreateTestGroup(t *testing.T, conn *sql.DB, cfg cliparse.Config, creatorID, name string) (groupID, adminKey, inviteSlug string) {
	t.Helper()

	groupID = uuid.NewString()
	adminKey = auth.GenerateAdminKey(groupID, cfg.AdminKeySalt)
	inviteSlug = auth.GenerateInviteSlug(groupID, cfg.InviteSalt)

	now := time.Now()
	_, err := conn.Exec(`
		INSERT INTO item_group (id, name, creator_id, invite_slug, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, groupID, name, creatorID, inviteSlug, now)
	if err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO group_member (group_id, user_id, joined_at)
		VALUES ($1, $2, $3)
	`, groupID, creatorID, now)
	if err != nil {
		t.Fatalf("Failed to add creator membership: %v", err)
	}

	return groupID, adminKey, inviteSlug
}

// JoinTestGroup adds a user to an existing group
func JoinTestGroup(t *testing.T, conn *sql.DB, groupID, userID string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO group_member (group_id, user_id, joined_at)
		VALUES ($1, $2, $3)
	`, groupID, userID, time.Now())
	if err != nil {
		t.Fatalf("Failed to join test group: %v", err)
	}
}

// AddTestItem creates an item in the default category, links it to the
// group, and returns the item ID
func AddTestItem(t *testing.T, conn *sql.DB, groupID, name string) string {
	t.Helper()

	categoryID, err := db.ResolveCategory(conn, db.DefaultCategoryName)
	if err != nil {
		t.Fatalf("Failed to resolve default category: %v", err)
	}

	itemID := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO item (id, name, category_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, itemID, name, categoryID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO group_item (group_id, item_id)
		VALUES ($1, $2)
	`, groupID, itemID)
	if err != nil {
		t.Fatalf("Failed to link test item: %v", err)
	}

	return itemID
}

// SetTestRating writes a rating row directly, creating or replacing it
func SetTestRating(t *testing.T, conn *sql.DB, userID, groupID, itemID string, rating float64, count int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO item_rating (user_id, group_id, item_id, rating, comparison_count)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, group_id, item_id)
		DO UPDATE SET rating = $4, comparison_count = $5
	`, userID, groupID, itemID, rating, count)
	if err != nil {
		t.Fatalf("Failed to set test rating: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
