// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"sync"
	"testing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

func TestOpenRejectsUnknownType(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	conn := openTestDB(t)

	if err := CreateSchema(conn); err != nil {
		t.Errorf("Second CreateSchema call failed: %v", err)
	}
}

func TestRowLockSuffix(t *testing.T) {
	if got := RowLockSuffix("postgres"); got != " FOR UPDATE" {
		t.Errorf("Expected ' FOR UPDATE' for postgres, got %q", got)
	}
	if got := RowLockSuffix("sqlite"); got != "" {
		t.Errorf("Expected empty suffix for sqlite, got %q", got)
	}
}

func TestResolveCategoryIsIdempotent(t *testing.T) {
	conn := openTestDB(t)

	first, err := ResolveCategory(conn, "drinks")
	if err != nil {
		t.Fatalf("First resolution failed: %v", err)
	}
	second, err := ResolveCategory(conn, "drinks")
	if err != nil {
		t.Fatalf("Second resolution failed: %v", err)
	}
	if first != second {
		t.Errorf("Expected stable category ID, got %s then %s", first, second)
	}

	other, err := ResolveCategory(conn, "snacks")
	if err != nil {
		t.Fatalf("Resolution of second name failed: %v", err)
	}
	if other == first {
		t.Error("Distinct names must not share a category ID")
	}
}

func TestDefaultIDCachesAcrossCalls(t *testing.T) {
	conn := openTestDB(t)

	var resolver CategoryResolver
	first, err := resolver.DefaultID(conn)
	if err != nil {
		t.Fatalf("First DefaultID call failed: %v", err)
	}

	// Concurrent callers must all see the same cached ID
	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id, err := resolver.DefaultID(conn)
			if err != nil {
				t.Errorf("DefaultID call %d failed: %v", n, err)
				return
			}
			results[n] = id
		}(i)
	}
	wg.Wait()

	for i, id := range results {
		if id != first {
			t.Errorf("Call %d: expected %s, got %s", i, first, id)
		}
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM category WHERE name = $1`, DefaultCategoryName).Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly one default category row, got %d", count)
	}
}
