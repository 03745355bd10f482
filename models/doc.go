// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterUserRequest: display_name
  - CreateGroupRequest: name
  - AddItemRequest: name, category
  - RecordComparisonRequest: winner_item_id, loser_item_id

# Response Types

Types for JSON responses:

  - RegisterUserResponse: user_id, user_token
  - CreateGroupResponse: group_id, admin_key, invite_slug
  - JoinGroupResponse: group_id, name
  - AddItemResponse: item_id
  - ImportItemsResponse: imported, skipped, message
  - MatchupResponse: available, left, right
  - RecordComparisonResponse: comparison_id, winner, loser
  - RankingsResponse: group_id, rankings
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User: registered user with secret token
  - Group: user-defined comparison group with invite slug
  - Item: rateable item with category
  - ItemRating: one user's rating state for an item in a group

MatchupResponse deliberately models "no pair available" as a successful
response with Available=false; callers surface it as a "need more items"
condition, never as an error.
*/
package models
