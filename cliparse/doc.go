// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3419)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - AdminKeySalt: Secret for group admin key HMAC (required)
  - InviteSalt: Secret for invite slug generation (required)
  - BaseRating: Elo rating assigned to never-compared items (default: 1200)
  - LowHistoryThreshold: Cold-start comparison threshold (default: 5)
  - DiscoveryRate: Probability of a wide-gap matchup (default: 0.15)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-admin-salt      Group admin key salt
	-invite-salt     Invite slug salt
	-base-rating     Base Elo rating
	-low-history     Cold-start threshold
	-discovery-rate  Discovery pairing probability

# Environment Variables

Flags fall back to environment variables:

	PORT                  → -p
	DATABASE_URL          → -d
	DATABASE_TYPE         → -t
	ADMIN_KEY_SALT        → -admin-salt
	INVITE_SLUG_SALT      → -invite-salt
	BASE_RATING           → -base-rating
	LOW_HISTORY_THRESHOLD → -low-history
	DISCOVERY_RATE        → -discovery-rate

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - ADMIN_KEY_SALT and INVITE_SLUG_SALT must be provided
  - DISCOVERY_RATE must lie in [0, 1]

The base rating is a deployment-wide constant: groups created under one
base cannot be mixed with another without resetting all rating rows.
*/
package cliparse
