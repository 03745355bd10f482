// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type RegisterUserRequest struct {
	DisplayName string `json:"display_name"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type AddItemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

type RecordComparisonRequest struct {
	WinnerItemID string `json:"winner_item_id"`
	LoserItemID  string `json:"loser_item_id"`
}

// Response types

type RegisterUserResponse struct {
	UserID    string `json:"user_id"`
	UserToken string `json:"user_token"`
}

type CreateGroupResponse struct {
	GroupID    string `json:"group_id"`
	AdminKey   string `json:"admin_key"`
	InviteSlug string `json:"invite_slug"`
}

type JoinGroupResponse struct {
	GroupID string `json:"group_id"`
	Name    string `json:"name"`
}

type AddItemResponse struct {
	ItemID string `json:"item_id"`
}

type ImportItemsResponse struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Message  string `json:"message"`
}

// MatchupResponse carries the next pair to present, or no pair at all when
// the group has fewer than two items. The empty case is a normal outcome,
// not an error.
type MatchupResponse struct {
	Available bool         `json:"available"`
	Left      *MatchupSide `json:"left,omitempty"`
	Right     *MatchupSide `json:"right,omitempty"`
	Message   string       `json:"message,omitempty"`
}

type MatchupSide struct {
	ItemID      string  `json:"item_id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	Comparisons int     `json:"comparisons"`
}

type RecordComparisonResponse struct {
	ComparisonID string     `json:"comparison_id"`
	Winner       RatingView `json:"winner"`
	Loser        RatingView `json:"loser"`
}

// RatingView is one side's before/after rating state for a recorded
// comparison.
type RatingView struct {
	ItemID      string  `json:"item_id"`
	OldRating   float64 `json:"old_rating"`
	NewRating   float64 `json:"new_rating"`
	Comparisons int     `json:"comparisons"`
}

type RankingsResponse struct {
	GroupID  string        `json:"group_id"`
	Rankings []ItemRanking `json:"rankings"`
}

type ItemRanking struct {
	ItemID      string  `json:"item_id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	Comparisons int     `json:"comparisons"`
	Rank        int     `json:"rank"` // 1-indexed
}

// Domain types

type User struct {
	ID          string    `json:"id"`
	Token       string    `json:"-"` // Never expose in JSON
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type Group struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatorID  string    `json:"creator_id"`
	InviteSlug string    `json:"invite_slug"`
	CreatedAt  time.Time `json:"created_at"`
}

type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type GroupWithItems struct {
	Group Group  `json:"group"`
	Items []Item `json:"items"`
}

// ItemRating is one user's persisted rating state for an item within a
// group. Rows are created lazily on first comparison; absent rows mean
// base rating with zero comparisons.
type ItemRating struct {
	UserID          string  `json:"-"`
	GroupID         string  `json:"group_id"`
	ItemID          string  `json:"item_id"`
	Rating          float64 `json:"rating"`
	ComparisonCount int     `json:"comparison_count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
