// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the DuelRank API server.

DuelRank is a group ranking service built on pairwise comparisons: members
pick winners in head-to-head matchups and an Elo engine turns those picks
into per-user ratings and rankings.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=duelrank.db go run main.go

Or with flags:

	go run main.go -p 3419 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - INVITE_SLUG_SALT (--invite-salt): Secret for invite slug generation

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - BASE_RATING (--base-rating): Starting Elo rating (default: 1200)
  - LOW_HISTORY_THRESHOLD (--low-history): Cold-start cutoff (default: 5)
  - DISCOVERY_RATE (--discovery-rate): Wide-gap matchup probability (default: 0.15)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, groups, items, ratings)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Token generation and validation
  - elo: Rating engine and matchup selection
  - db: Backend drivers and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
