// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/duelrank/models"
	"github.com/danielhkuo/duelrank/testutil"
)

func recordComparison(t *testing.T, handler *RatingHandler, groupID, token, winnerID, loserID string) *httptest.ResponseRecorder {
	t.Helper()

	req := testutil.MakeRequest("POST", "/groups/"+groupID+"/comparisons",
		models.RecordComparisonRequest{WinnerItemID: winnerID, LoserItemID: loserID},
		map[string]string{"X-User-Token": token})
	req.SetPathValue("id", groupID)
	w := httptest.NewRecorder()
	handler.RecordComparison(w, req)
	return w
}

func TestRecordComparisonFirstMatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewRatingHandler(db, cfg)

	creatorID, token := testutil.CreateTestUser(t, db, "Creator")
	groupID, _, _ := testutil.CreateTestGroup(t, db, cfg, creatorID, "First Match")
	winnerID := testutil.AddTestItem(t, db, groupID, "Winner")
	loserID := testutil.AddTestItem(t, db, groupID, "Loser")

	w := recordComparison(t, handler, groupID, token, winnerID, loserID)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.RecordComparisonResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.ComparisonID == "" {
		t.Error("Expected non-empty comparison_id")
	}

	// Both start at 1200 with K=40: expected score 0.5 each, so +20/-20
	if resp.Winner.OldRating != 1200 || resp.Winner.NewRating != 1220 {
		t.Errorf("Winner: expected 1200 -> 1220, got %v -> %v", resp.Winner.OldRating, resp.Winner.NewRating)
	}
	if resp.Loser.OldRating != 1200 || resp.Loser.NewRating != 1180 {
		t.Errorf("Loser: expected 1200 -> 1180, got %v -> %v", resp.Loser.OldRating, resp.Loser.NewRating)
	}
	if resp.Winner.Comparisons != 1 || resp.Loser.Comparisons != 1 {
		t.Errorf("Expected both counts at 1, got %d and %d", resp.Winner.Comparisons, resp.Loser.Comparisons)
	}
}

func TestRecordComparisonCreatesRowsLazily(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewRatingHandler(db, cfg)

	creatorID, token := testutil.CreateTestUser(t, db, "Creator")
	groupID, _, _ := testutil.CreateTestGroup(t, db, cfg, creatorID, "Lazy Rows")
	winnerID := testutil.AddTestItem(t, db, groupID, "Winner")
	loserID := testutil.AddTestItem(t, db, groupID, "Loser")

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM item_rating`).Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("Expected no rating rows before first comparison, got %d", count)
	}

	w := recordComparison(t, handler, groupID, token, winnerID, loserID)
	testutil.AssertStatus(t, w, http.StatusCreated)

	if err := db.QueryRow(`SELECT COUNT(*) FROM item_rating`).Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 rating rows after first comparison, got %d", count)
	}
}

func TestRecordComparisonAccumulates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewRatingHandler(db, cfg)

	creatorID, token := testutil.CreateTestUser(t, db, "Creator")
	groupID, _, _ := testutil.CreateTestGroup(t, db, cfg, creatorID, "Streak")
	strongID := testutil.AddTestItem(t, db, groupID, "Strong")
	weakID := testutil.AddTestItem(t, db, groupID, "Weak")

	var last models.RecordComparisonResponse
	for i := 0; i < 3; i++ {
		w := recordComparison(t, handler, groupID, token, strongID, weakID)
		testutil.AssertStatus(t, w, http.StatusCreated)
		testutil.AssertJSON(t, w, &last)
	}

	if last.Winner.Comparisons != 3 || last.Loser.Comparisons != 3 {
		t.Errorf("Expected counts of 3, got %d and %d", last.Winner.Comparisons, last.Loser.Comparisons)
	}
	if last.Winner.NewRating <= last.Winner.OldRating {
		t.Error("Repeated wins should keep raising the winner's rating")
	}
	if last.Winner.NewRating-last.Winner.OldRating >= 20 {
		t.Error("Win against a weaker opponent should move the rating less than an even match")
	}

	// Audit log keeps one row per recorded comparison
	var audits int
	if err := db.QueryRow(`SELECT COUNT(*) FROM comparison WHERE group_id = $1`, groupID).Scan(&audits); err != nil {
		t.Fatalf("Audit count query failed: %v", err)
	}
	if audits != 3 {
		t.Errorf("Expected 3 audit rows, got %d", audits)
	}
}

func TestRecordComparisonScopedPerUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewRatingHandler(db, cfg)

	creatorID, creatorToken := testutil.CreateTestUser(t, db, "Creator")
	groupID, _, _ := testutil.CreateTestGroup(t, db, cfg, creatorID, "Scoped")
	itemA := testutil.AddTestItem(t, db, groupID, "Item A")
	itemB := testutil.AddTestItem(t, db, groupID, "Item B")

	otherID, otherToken := testutil.CreateTestUser(t, db, "Other")
	testutil.JoinTestGroup(t, db, groupID, otherID)

	// Both users compare the same pair with opposite outcomes
	w := recordComparison(t, handler, groupID, creatorToken, itemA, itemB)
	testutil.AssertStatus(t, w, http.StatusCreated)
	w = recordComparison(t, handler, groupID, otherToken, itemB, itemA)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var creatorRating, otherRating float64
	err := db.QueryRow(`
		SELECT rating FROM item_rating
		WHERE user_id = $1 AND group_id = $2 AND item_id = $3
	`, creatorID, groupID, itemA).Scan(&creatorRating)
	if err != nil {
		t.Fatalf("Failed to read creator rating: %v", err)
	}
	err = db.QueryRow(`
		SELECT rating FROM item_rating
		WHERE user_id = $1 AND group_id = $2 AND item_id = $3
	`, otherID, groupID, itemA).Scan(&otherRating)
	if err != nil {
		t.Fatalf("Failed to read other rating: %v", err)
	}

	if creatorRating != 1220 {
		t.Errorf("Creator's rating for item A should be 1220, got %v", creatorRating)
	}
	if otherRating != 1180 {
		t.Errorf("Other user's rating for item A should be 1180, got %v", otherRating)
	}
}

func TestRecordComparisonValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewRatingHandler(db, cfg)

	creatorID, token := testutil.CreateTestUser(t, db, "Creator")
	groupID, _, _ := testutil.CreateTestGroup(t, db, cfg, creatorID, "Validation")
	itemA := testutil.AddTestItem(t, db, groupID, "Item A")
	itemB := testutil.AddTestItem(t, db, groupID, "Item B")

	otherGroup, _, _ := testutil.CreateTestGroup(t, db, cfg, creatorID, "Elsewhere")
	foreignItem := testutil.AddTestItem(t, db, otherGroup, "Foreign Item")

	_, outsiderToken := testutil.CreateTestUser(t, db, "Outsider")

	tests := []struct {
		name       string
		token      string
		winnerID   string
		loserID    string
		wantStatus int
	}{
		{
			name:       "self comparison",
			token:      token,
			winnerID:   itemA,
			loserID:    itemA,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing loser",
			token:      token,
			winnerID:   itemA,
			loserID:    "",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "winner not in group",
			token:      token,
			winnerID:   foreignItem,
			loserID:    itemB,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "loser not in group",
			token:      token,
			winnerID:   itemA,
			loserID:    foreignItem,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non-member",
			token:      outsiderToken,
			winnerID:   itemA,
			loserID:    itemB,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := recordComparison(t, handler, groupID, tt.token, tt.winnerID, tt.loserID)
			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}

	// None of the rejected requests may leave rating rows behind
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM item_rating`).Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no rating rows after rejected comparisons, got %d", count)
	}
}
