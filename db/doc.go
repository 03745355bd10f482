// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Opening a Connection

Open selects the driver from the configured type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported backends are sqlite (modernc.org/sqlite, pure Go, the default)
and postgres (lib/pq). SQL statements throughout the repo stick to the
dialect subset both accept ($n placeholders, ON CONFLICT upserts,
CURRENT_TIMESTAMP defaults).

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - app_user: Registered users with secret tokens
  - item_group: User-defined comparison groups
  - group_member: Group membership
  - category: Item categories
  - item: Rateable items
  - group_item: Item-to-group membership (many-to-many)
  - item_rating: Per-(user, group, item) rating state
  - comparison: Audit log of recorded comparisons

# Relationships

	app_user 1──* item_group (creator)
	item_group *──* app_user (via group_member)
	item_group *──* item (via group_item)
	category 1──* item
	item_rating keyed by (user, group, item)

All foreign keys use ON DELETE CASCADE except category references.

# Row Locking

RowLockSuffix returns " FOR UPDATE" on postgres and nothing on sqlite,
where single-writer transactions already serialize read-modify-write:

	query := "SELECT rating, comparison_count FROM item_rating WHERE ..." +
		db.RowLockSuffix(cfg.DatabaseType)

# Default Category

CategoryResolver resolves the reserved "general" category once per process
with thread-safe single-flight initialization:

	var categories db.CategoryResolver
	id, err := categories.DefaultID(conn)
*/
package db
