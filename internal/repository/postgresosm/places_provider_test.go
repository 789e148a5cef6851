package postgresosm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/domain"
)

// Barcelona city center, matches the extract loaded in docker-compose
var barcelonaCenter = domain.Coordinate{Lat: 41.3851, Lng: 2.1734}

func TestPlacesProvider_TextSearch(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)
	skipIfNoOSMData(t, db)

	provider := NewPlacesProvider(db, zap.NewNop())
	ctx := context.Background()

	t.Run("restaurants are ordered by distance", func(t *testing.T) {
		resp, err := provider.TextSearch(ctx, domain.SearchRequest{
			Origin:   barcelonaCenter,
			RadiusKm: 2,
			Query:    "restaurant",
		})
		require.NoError(t, err)
		if resp.Status == domain.StatusZeroResults {
			t.Skip("no restaurants in loaded extract")
		}
		require.Equal(t, domain.StatusOK, resp.Status)
		assert.LessOrEqual(t, len(resp.Results), LimitPlaces)

		prev := 0.0
		for _, place := range resp.Results {
			assert.NotEmpty(t, place.ID)
			assert.NotEmpty(t, place.Name)
			assertValidCoordinates(t, place.Location.Lat, place.Location.Lng)

			d := barcelonaCenter.DistanceKm(place.Location)
			assert.LessOrEqual(t, d, 2.05)
			assert.GreaterOrEqual(t, d+0.01, prev)
			prev = d
		}
	})

	t.Run("larger radius never returns fewer places", func(t *testing.T) {
		small, err := provider.TextSearch(ctx, domain.SearchRequest{Origin: barcelonaCenter, RadiusKm: 0.5, Query: "cafe"})
		require.NoError(t, err)
		large, err := provider.TextSearch(ctx, domain.SearchRequest{Origin: barcelonaCenter, RadiusKm: 1.5, Query: "cafe"})
		require.NoError(t, err)

		assert.GreaterOrEqual(t, len(large.Results), len(small.Results))
	})

	t.Run("middle of the ocean has zero results", func(t *testing.T) {
		resp, err := provider.TextSearch(ctx, domain.SearchRequest{
			Origin:   domain.Coordinate{Lat: -40, Lng: -120},
			RadiusKm: 1,
			Query:    "restaurant",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusZeroResults, resp.Status)
		assert.Empty(t, resp.Results)
	})

	t.Run("empty query is invalid", func(t *testing.T) {
		resp, err := provider.TextSearch(ctx, domain.SearchRequest{Origin: barcelonaCenter, RadiusKm: 1})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInvalidRequest, resp.Status)
	})

	t.Run("cancelled context returns error", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := provider.TextSearch(cctx, domain.SearchRequest{Origin: barcelonaCenter, RadiusKm: 1, Query: "bar"})
		assert.Error(t, err)
	})
}

func TestPlaceRow_ToDomain(t *testing.T) {
	row := placeRow{
		OSMID:       123,
		Name:        "",
		Category:    "restaurant",
		Street:      "Carrer de Montcada",
		HouseNumber: "22",
		Cuisine:     "tapas",
		Lat:         41.3846,
		Lon:         2.1815,
	}

	place := row.toDomain()

	assert.Equal(t, "osm:123", place.ID)
	assert.Equal(t, "Restaurant 123", place.Name)
	assert.Equal(t, "Carrer de Montcada, 22", place.Address)
	assert.Equal(t, []string{"restaurant", "tapas"}, place.Types)
	assert.Equal(t, domain.Coordinate{Lat: 41.3846, Lng: 2.1815}, place.Location)
	assert.Nil(t, place.Rating)
}

func TestPlacesProvider_InvalidRequestWithoutDB(t *testing.T) {
	provider := NewPlacesProvider(nil, zap.NewNop())

	resp, err := provider.TextSearch(context.Background(), domain.SearchRequest{Origin: barcelonaCenter, RadiusKm: 0, Query: "bar"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInvalidRequest, resp.Status)
	assert.Equal(t, "osm", provider.Name())
}
