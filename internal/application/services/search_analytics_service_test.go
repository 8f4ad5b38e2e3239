package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/machparts/partsearch/internal/application/services"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrack_ReturnsIDImmediately(t *testing.T) {
	repo := newStubAnalyticsRepo()
	service := services.NewSearchAnalyticsService(repo)

	id := service.Track(context.Background(), &entities.SearchEvent{
		Action:    entities.ActionSearchExecuted,
		QueryText: "tractor starter",
	})

	assert.NotEmpty(t, id)

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was never written")
	}

	events := repo.loggedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.False(t, events[0].CreatedAt.IsZero())
}

func TestTrack_KeepsCallerAssignedID(t *testing.T) {
	repo := newStubAnalyticsRepo()
	service := services.NewSearchAnalyticsService(repo)

	id := service.Track(context.Background(), &entities.SearchEvent{
		ID:     "fixed-id",
		Action: entities.ActionPartClicked,
	})

	assert.Equal(t, "fixed-id", id)
}

func TestTrack_SinkFailureIsSwallowed(t *testing.T) {
	repo := newStubAnalyticsRepo()
	repo.logErr = errors.New("sink down")
	service := services.NewSearchAnalyticsService(repo)

	id := service.Track(context.Background(), &entities.SearchEvent{
		Action: entities.ActionOrderConverted,
	})

	assert.NotEmpty(t, id)

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatal("write was never attempted")
	}
	assert.Empty(t, repo.loggedEvents())
}

func TestGetZeroResultQueries_DefaultsLimit(t *testing.T) {
	repo := newStubAnalyticsRepo()
	repo.zeroResults = []*repositories.ZeroResultQuery{
		{QueryText: "flux capacitor", Occurrences: 12},
	}
	service := services.NewSearchAnalyticsService(repo)

	results, err := service.GetZeroResultQueries(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastLimit)
	require.Len(t, results, 1)
	assert.Equal(t, "flux capacitor", results[0].QueryText)

	_, err = service.GetZeroResultQueries(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastLimit)

	_, err = service.GetZeroResultQueries(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastLimit)
}
