// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database backend.
// Supported types: "sqlite" (modernc, pure Go) and "postgres" (lib/pq).
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	driver := ""
	switch databaseType {
	case "sqlite":
		driver = "sqlite"
	case "postgres":
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type: %s", databaseType)
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", databaseType, err)
	}

	if databaseType == "sqlite" {
		// A single writer avoids SQLITE_BUSY under concurrent requests and
		// gives the same per-row serialization FOR UPDATE provides on postgres.
		conn.SetMaxOpenConns(1)
	}

	return conn, nil
}

// RowLockSuffix returns the SELECT suffix that locks matched rows for the
// duration of the transaction. Postgres needs an explicit FOR UPDATE;
// sqlite's single-writer transactions already serialize the read-modify-write.
func RowLockSuffix(databaseType string) string {
	if databaseType == "postgres" {
		return " FOR UPDATE"
	}
	return ""
}
