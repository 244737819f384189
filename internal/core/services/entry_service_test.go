package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/capsule-journal/internal/adapters/repository"
	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
	"github.com/comitanigiacomo/capsule-journal/internal/core/services"
)

func TestEntryService_Create(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 2, 10, 21, 0, 0, 0, time.UTC)

	t.Run("Success: Should fill mood and color defaults", func(t *testing.T) {
		svc := services.NewEntryService(repository.NewInMemoryEntryRepository(), time.UTC)

		created, err := svc.Create(ctx, services.CreateEntryInput{Date: date, Content: "Dear diary"})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, domain.DefaultMood, created.Mood)
		assert.Equal(t, domain.DefaultColor, created.Color)

		fetched, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, fetched)
	})

	t.Run("Success: Should keep arbitrary colors verbatim", func(t *testing.T) {
		svc := services.NewEntryService(repository.NewInMemoryEntryRepository(), time.UTC)

		created, err := svc.Create(ctx, services.CreateEntryInput{Date: date, Color: "#A1B2C3"})
		require.NoError(t, err)
		assert.Equal(t, "#A1B2C3", created.Color)
	})

	t.Run("Success: Should stamp zero dates with now", func(t *testing.T) {
		svc := services.NewEntryService(repository.NewInMemoryEntryRepository(), time.UTC)

		before := time.Now()
		created, err := svc.Create(ctx, services.CreateEntryInput{Content: "undated"})
		require.NoError(t, err)
		assert.False(t, created.Date.Before(before))
	})

	t.Run("Fail: Should propagate repository errors", func(t *testing.T) {
		repo := new(MockEntryRepo)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

		svc := services.NewEntryService(repo, time.UTC)
		created, err := svc.Create(ctx, services.CreateEntryInput{Date: date})
		assert.Error(t, err)
		assert.Nil(t, created)
	})
}

func TestEntryService_Update(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 2, 10, 21, 0, 0, 0, time.UTC)

	t.Run("Success: Should replace fields and preserve id", func(t *testing.T) {
		svc := services.NewEntryService(repository.NewInMemoryEntryRepository(), time.UTC)
		created, err := svc.Create(ctx, services.CreateEntryInput{Date: date, Mood: "Sad", Content: "v1", Color: "red"})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, services.UpdateEntryInput{
			ID: created.ID, Date: date.AddDate(0, 0, 1), Mood: "Excited", Content: "v2", Color: "green",
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "v2", updated.Content)

		list, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Excited", list[0].Mood)
		assert.True(t, list[0].Date.Equal(date.AddDate(0, 0, 1)))
	})

	t.Run("Success: Zero date keeps the old one", func(t *testing.T) {
		svc := services.NewEntryService(repository.NewInMemoryEntryRepository(), time.UTC)
		created, err := svc.Create(ctx, services.CreateEntryInput{Date: date})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, services.UpdateEntryInput{ID: created.ID, Content: "x"})
		require.NoError(t, err)
		assert.True(t, updated.Date.Equal(date))
	})

	t.Run("Fail: Should return NotFound for unknown id", func(t *testing.T) {
		repo := new(MockEntryRepo)
		repo.On("GetByID", ctx, "ghost").Return(nil, domain.ErrEntryNotFound)

		svc := services.NewEntryService(repo, time.UTC)
		_, err := svc.Update(ctx, services.UpdateEntryInput{ID: "ghost"})

		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestEntryService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := services.NewEntryService(repository.NewInMemoryEntryRepository(), time.UTC)

	created, err := svc.Create(ctx, services.CreateEntryInput{Date: time.Now()})
	require.NoError(t, err)

	t.Run("Success: Should delete existing entry", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, created.ID))

		_, err := svc.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	t.Run("Fail: Second delete reports NotFound", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrEntryNotFound)
	})
}

func TestEntryService_ListAndFilter(t *testing.T) {
	ctx := context.Background()
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	svc := services.NewEntryService(repository.NewInMemoryEntryRepository(), rome)

	// 23:30 UTC on the 9th is already the 10th in Rome.
	late := time.Date(2025, 2, 9, 23, 30, 0, 0, time.UTC)
	morning := time.Date(2025, 2, 10, 8, 0, 0, 0, rome)
	other := time.Date(2025, 2, 11, 8, 0, 0, 0, rome)

	for _, d := range []time.Time{late, other, morning} {
		_, err := svc.Create(ctx, services.CreateEntryInput{Date: d})
		require.NoError(t, err)
	}

	t.Run("Success: List is newest first", func(t *testing.T) {
		list, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.True(t, list[0].Date.Equal(other))
		assert.True(t, list[2].Date.Equal(late))
	})

	t.Run("Success: Filter uses the service calendar", func(t *testing.T) {
		list, err := svc.FilterByDay(ctx, time.Date(2025, 2, 10, 12, 0, 0, 0, rome))
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("Success: Empty day yields empty slice", func(t *testing.T) {
		list, err := svc.FilterByDay(ctx, time.Date(2025, 3, 1, 12, 0, 0, 0, rome))
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("Success: List is a snapshot", func(t *testing.T) {
		list, err := svc.List(ctx)
		require.NoError(t, err)
		list[0].Content = "mutated"

		again, err := svc.List(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again[0].Content)
	})
}
