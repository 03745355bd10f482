// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the DuelRank API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

User management (requires X-User-Token after registration):

	POST /users/register  - Create user, returns token
	GET  /users/me        - Get user info
	GET  /users/my-groups - List joined groups

Group management:

	POST /groups             - Create group (returns admin_key, invite_slug)
	POST /groups/{slug}/join - Join via invite slug
	GET  /groups/{id}        - Group details and items (members only)

Item management (admin, requires X-Admin-Key):

	POST /groups/{id}/items        - Add item
	POST /groups/{id}/items/import - Bulk import from CSV

Rating operations (members only):

	GET  /groups/{id}/matchup     - Next pair to compare
	POST /groups/{id}/comparisons - Record a winner/loser outcome
	GET  /groups/{id}/rankings    - Items sorted by rating

# Handler Initialization

The router creates handler instances with dependency injection:

	userHandler := handlers.NewUserHandler(db, cfg)
	groupHandler := handlers.NewGroupHandler(db, cfg)
	itemHandler := handlers.NewItemHandler(db, cfg)
	ratingHandler := handlers.NewRatingHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
