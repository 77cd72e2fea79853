package database

import (
	"context"
	"fmt"

	"events-api/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// InitSQLite opens the file-backed store. An in-memory path is pinned to a
// single connection, since every new connection would see an empty database.
func InitSQLite(config *config.DatabaseConfig) (*sqlx.DB, error) {
	path := config.SQLitePath
	inMemory := path == ":memory:"

	db, err := sqlx.Connect("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path))
	if err != nil {
		return nil, err
	}
	if inMemory {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

func EnsureSQLiteSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}
