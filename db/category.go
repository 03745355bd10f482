// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// DefaultCategoryName is assigned to items created without a category.
const DefaultCategoryName = "general"

// CategoryResolver caches the default category ID after first resolution.
// The ID never changes once the row exists, so one lookup per process is
// enough; the mutex makes initialization single-flight under concurrent
// requests. Failed attempts are not cached and retry on the next call.
type CategoryResolver struct {
	mu sync.Mutex
	id string
}

// DefaultID returns the ID of the reserved default category, creating the
// row on first use.
func (c *CategoryResolver) DefaultID(db *sql.DB) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.id != "" {
		return c.id, nil
	}

	id, err := ResolveCategory(db, DefaultCategoryName)
	if err != nil {
		return "", err
	}
	c.id = id
	return id, nil
}

// ResolveCategory returns the ID for a category name, inserting the row if
// it does not exist yet. Insert-if-absent keeps concurrent resolvers of the
// same name from racing.
func ResolveCategory(db *sql.DB, name string) (string, error) {
	_, err := db.Exec(`
		INSERT INTO category (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
	`, uuid.NewString(), name)
	if err != nil {
		return "", fmt.Errorf("failed to insert category %q: %w", name, err)
	}

	var id string
	err = db.QueryRow(`SELECT id FROM category WHERE name = $1`, name).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to resolve category %q: %w", name, err)
	}

	return id, nil
}
