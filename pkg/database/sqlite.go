package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const sessionSlotSchema = `
CREATE TABLE IF NOT EXISTS session_slots (
	slot_key   TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// NewSQLite opens (creating when needed) the local database file that backs the
// session slot and makes sure its schema exists.
func NewSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	// A single writer keeps sqlite from returning SQLITE_BUSY under the gate.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sessionSlotSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session slot schema: %w", err)
	}

	return db, nil
}
