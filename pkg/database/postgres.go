package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/noah-isme/contentguard-api/pkg/config"
)

const connectTimeout = 5 * time.Second

// ErrContentTableMissing is returned when the seed database has no content_items table.
var ErrContentTableMissing = errors.New("content_items table not found")

// NewPostgres opens the database the content repository is seeded from and
// checks that the content_items table is present. The seed is read once, so
// the pool stays small.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(max(cfg.MaxOpenConns, 1))
	db.SetMaxIdleConns(max(cfg.MaxIdleConns, 0))
	db.SetConnMaxIdleTime(time.Minute)

	checkCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := requireContentTable(checkCtx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func requireContentTable(ctx context.Context, db *sqlx.DB) error {
	var table sql.NullString
	if err := db.GetContext(ctx, &table, `SELECT to_regclass('public.content_items')::text`); err != nil {
		return fmt.Errorf("check content seed table: %w", err)
	}
	if !table.Valid {
		return ErrContentTableMissing
	}
	return nil
}
