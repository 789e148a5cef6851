package usecase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/usecase"
)

func TestAccumulator(t *testing.T) {
	acc := usecase.NewAccumulator(barcelona)

	home := acc.Home()
	assert.Equal(t, domain.MarkerHome, home.Kind)
	assert.Equal(t, barcelona, home.Position)
	assert.True(t, acc.Bounds().IsEmpty())
	assert.Empty(t, acc.Markers())

	places := makePlaces(barcelona, 3)
	seen := map[uuid.UUID]bool{home.ID: true}
	for i, p := range places {
		marker := acc.Add(domain.Annotate(barcelona, p))
		assert.Equal(t, domain.MarkerPlace, marker.Kind)
		assert.Equal(t, p.ID, marker.PlaceID)
		assert.Equal(t, p.Location, marker.Position)
		assert.False(t, seen[marker.ID], "marker ids must be unique")
		seen[marker.ID] = true
		assert.Len(t, acc.Places(), i+1)
	}

	require.Len(t, acc.Markers(), 3)
	bounds := acc.Bounds()
	for _, p := range places {
		assert.True(t, bounds.Contains(p.Location))
	}
	// home marker does not take part in the bounds
	assert.False(t, bounds.Contains(barcelona))
}

func TestProjectOutcome(t *testing.T) {
	places := makePlaces(barcelona, 10)
	outcome := &domain.SearchOutcome{
		SessionID: uuid.New(),
		Origin:    barcelona,
		RadiusKm:  50,
		Attempts:  1,
	}
	for _, p := range places {
		outcome.Places = append(outcome.Places, domain.Annotate(barcelona, p))
	}

	acc := usecase.ProjectOutcome(outcome)

	require.Len(t, acc.Places(), 10)
	require.Len(t, acc.Markers(), 10)
	for i, marker := range acc.Markers() {
		assert.Equal(t, places[i].ID, marker.PlaceID)
		assert.Equal(t, places[i].ID, acc.Places()[i].ID)
	}
	assert.Equal(t, barcelona, acc.Home().Position)
}

func TestSelectPlace(t *testing.T) {
	origin := domain.Coordinate{Lat: 0, Lng: 0}
	place := domain.PlaceResult{ID: "p1", Name: "Cafe", Location: domain.Coordinate{Lat: 0, Lng: 1}}

	selection := usecase.SelectPlace(origin, place)

	assert.InDelta(t, 111.19, selection.Place.DistanceKm, 0.01)
	assert.Equal(t, "Cafe - 111.19 km from your location", selection.Label)
	assert.Equal(t, "p1", selection.Place.ID)

	again := usecase.SelectPlace(origin, place)
	assert.Equal(t, selection, again)
}

func TestSelectionLabel(t *testing.T) {
	assert.Equal(t, "Bar - 0.00 km from your location", usecase.SelectionLabel("Bar", 0))
	assert.Equal(t, "Bar - 1.24 km from your location", usecase.SelectionLabel("Bar", 1.2449))
}
