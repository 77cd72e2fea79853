package testutil

import (
	"context"
	"testing"

	"events-api/config"
	"events-api/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// SetupSQLite opens a private in-memory database with the events table.
func SetupSQLite(t *testing.T) *sqlx.DB {
	t.Helper()
	cfg := config.LoadTestConfig()
	cfg.Database.SQLitePath = ":memory:"

	db, err := database.InitSQLite(&cfg.Database)
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.EnsureSQLiteSchema(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

// SetupPostgres connects to the test postgres from LoadTestConfig and
// truncates the events table. The test is skipped when postgres is down.
func SetupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in -short mode")
	}
	cfg := config.LoadTestConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		t.Skipf("test postgres unavailable: %v", err)
	}
	t.Cleanup(pool.Close)

	ctx := context.Background()
	if err := database.EnsurePostgresSchema(ctx, pool); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE events RESTART IDENTITY"); err != nil {
		t.Fatalf("Failed to truncate events: %v", err)
	}
	return pool
}

// SetupRedis connects to the test redis from LoadTestConfig and flushes its
// db before and after the test. The test is skipped when redis is down.
func SetupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("redis integration test skipped in -short mode")
	}
	cfg := config.LoadTestConfig()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		t.Skipf("test redis unavailable: %v", err)
	}

	ctx := context.Background()
	if err := rdb.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush redis: %v", err)
	}
	t.Cleanup(func() {
		rdb.FlushDB(ctx)
		rdb.Close()
	})
	return rdb
}
