// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL is kept to the
// dialect subset both sqlite and postgres accept.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    token TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Groups
CREATE TABLE IF NOT EXISTS item_group (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    creator_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    invite_slug TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_item_group_creator ON item_group(creator_id);

-- Group membership
CREATE TABLE IF NOT EXISTS group_member (
    group_id TEXT NOT NULL REFERENCES item_group(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    joined_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (group_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_group_member_user ON group_member(user_id);

-- Item categories
CREATE TABLE IF NOT EXISTS category (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

-- Items
CREATE TABLE IF NOT EXISTS item (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category_id TEXT NOT NULL REFERENCES category(id),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (name, category_id)
);

-- Item <-> group membership (an item may belong to many groups)
CREATE TABLE IF NOT EXISTS group_item (
    group_id TEXT NOT NULL REFERENCES item_group(id) ON DELETE CASCADE,
    item_id TEXT NOT NULL REFERENCES item(id) ON DELETE CASCADE,
    PRIMARY KEY (group_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_group_item_item ON group_item(item_id);

-- Per-(user, group, item) rating state. Created lazily on first comparison.
CREATE TABLE IF NOT EXISTS item_rating (
    user_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    group_id TEXT NOT NULL REFERENCES item_group(id) ON DELETE CASCADE,
    item_id TEXT NOT NULL REFERENCES item(id) ON DELETE CASCADE,
    rating NUMERIC(12,4) NOT NULL,
    comparison_count INTEGER NOT NULL DEFAULT 0 CHECK (comparison_count >= 0),
    PRIMARY KEY (user_id, group_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_item_rating_user_group ON item_rating(user_id, group_id);

-- Audit log of recorded comparisons
CREATE TABLE IF NOT EXISTS comparison (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL REFERENCES item_group(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    winner_item_id TEXT NOT NULL REFERENCES item(id) ON DELETE CASCADE,
    loser_item_id TEXT NOT NULL REFERENCES item(id) ON DELETE CASCADE,
    winner_delta NUMERIC(12,4) NOT NULL,
    loser_delta NUMERIC(12,4) NOT NULL,
    ip_hash TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_comparison_group_user ON comparison(group_id, user_id);
`
