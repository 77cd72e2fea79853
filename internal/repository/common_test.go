package repository_test

import (
	"context"
	"testing"
	"time"

	"events-api/internal/model"
	"events-api/internal/repository"
	apperrors "events-api/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEvent(name string) *model.Event {
	return &model.Event{
		EventName:     name,
		StartingTime:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		EndingTime:    time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC),
		Image:         "https://cdn.example.com/summer.png",
		DiscountRate:  15,
		DiscountRules: 2,
		Price:         1200,
	}
}

func assertSameEvent(t *testing.T, want, got *model.Event) {
	t.Helper()
	assert.Equal(t, want.EventName, got.EventName)
	assert.True(t, want.StartingTime.Equal(got.StartingTime), "starting_time: want %s, got %s", want.StartingTime, got.StartingTime)
	assert.True(t, want.EndingTime.Equal(got.EndingTime), "ending_time: want %s, got %s", want.EndingTime, got.EndingTime)
	assert.Equal(t, want.Image, got.Image)
	assert.Equal(t, want.DiscountRate, got.DiscountRate)
	assert.Equal(t, want.DiscountRules, got.DiscountRules)
	assert.Equal(t, want.Price, got.Price)
}

// testEventRepository runs the behaviour every EventRepository must share.
// newRepo must return a repository over an empty events table.
func testEventRepository(t *testing.T, newRepo func(t *testing.T) repository.EventRepository) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		repo := newRepo(t)
		event := newTestEvent("Summer Concert")

		created, err := repo.Create(ctx, event)

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assertSameEvent(t, event, created)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assertSameEvent(t, event, found)
	})

	t.Run("FindByID_NotFound", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindByID(ctx, 9999)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})

	t.Run("List_Empty", func(t *testing.T) {
		repo := newRepo(t)

		events, err := repo.List(ctx)

		require.NoError(t, err)
		assert.NotNil(t, events)
		assert.Empty(t, events)
	})

	t.Run("List_InsertionOrder", func(t *testing.T) {
		repo := newRepo(t)
		a, err := repo.Create(ctx, newTestEvent("Event A"))
		require.NoError(t, err)
		b, err := repo.Create(ctx, newTestEvent("Event B"))
		require.NoError(t, err)

		events, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, a.ID, events[0].ID)
		assert.Equal(t, b.ID, events[1].ID)
		assert.Equal(t, "Event A", events[0].EventName)
		assert.Equal(t, "Event B", events[1].EventName)
	})

	t.Run("Update_OverwritesAllFields", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, newTestEvent("Original"))
		require.NoError(t, err)

		replacement := &model.Event{
			EventName:     "Renamed",
			StartingTime:  time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC),
			EndingTime:    time.Date(2025, 6, 2, 23, 0, 59, 0, time.UTC),
			Image:         "/static/renamed.jpg",
			DiscountRate:  0,
			DiscountRules: 7,
			Price:         99,
		}
		updated, err := repo.Update(ctx, created.ID, replacement)

		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assertSameEvent(t, replacement, updated)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assertSameEvent(t, replacement, found)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Update(ctx, 9999, newTestEvent("Ghost"))

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, newTestEvent("Short Lived"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), apperrors.ErrEventNotFound)
	})

	t.Run("CountByID", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, newTestEvent("Counted"))
		require.NoError(t, err)

		count, err := repo.CountByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		require.NoError(t, repo.Delete(ctx, created.ID))

		count, err = repo.CountByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("IDNotReusedAfterDelete", func(t *testing.T) {
		repo := newRepo(t)
		first, err := repo.Create(ctx, newTestEvent("First"))
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, first.ID))

		second, err := repo.Create(ctx, newTestEvent("Second"))

		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)
	})
}
