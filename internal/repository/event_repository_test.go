package repository_test

import (
	"testing"

	"events-api/internal/repository"
	"events-api/internal/testutil"
)

// Runs against the postgres from config.LoadTestConfig; skipped when it is not reachable.
func TestEventRepository_Postgres(t *testing.T) {
	testEventRepository(t, func(t *testing.T) repository.EventRepository {
		return repository.NewEventRepository(testutil.SetupPostgres(t))
	})
}
