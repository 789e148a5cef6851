package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearby-places/internal/domain"
)

func TestNearbySearchRequestedEvent_Hint(t *testing.T) {
	t.Run("with device coordinates", func(t *testing.T) {
		lat, lng := 41.3851, 2.1734
		event := domain.NearbySearchRequestedEvent{
			RequestID: uuid.New(),
			Lat:       &lat,
			Lng:       &lng,
			ClientIP:  "203.0.113.7",
		}

		hint := event.Hint()
		require.NotNil(t, hint.Fix)
		assert.Equal(t, domain.Coordinate{Lat: lat, Lng: lng}, *hint.Fix)
		assert.Equal(t, "203.0.113.7", hint.ClientIP)
	})

	t.Run("lat without lng is ignored", func(t *testing.T) {
		lat := 41.3851
		event := domain.NearbySearchRequestedEvent{Lat: &lat}

		hint := event.Hint()
		assert.Nil(t, hint.Fix)
	})

	t.Run("json round trip keeps optional fields", func(t *testing.T) {
		raw := `{"request_id":"8a0e4d3c-5b1f-4c3a-9d2e-1f0a9b8c7d6e","lat":48.8566,"lng":2.3522,"query":"cafe"}`

		var event domain.NearbySearchRequestedEvent
		require.NoError(t, json.Unmarshal([]byte(raw), &event))
		assert.Equal(t, "cafe", event.Query)
		assert.Empty(t, event.ClientIP)

		hint := event.Hint()
		require.NotNil(t, hint.Fix)
		assert.Equal(t, domain.Coordinate{Lat: 48.8566, Lng: 2.3522}, *hint.Fix)
	})

	t.Run("marshals coordinates as lat and lng", func(t *testing.T) {
		lat, lng := 41.3851, 2.1734
		data, err := json.Marshal(domain.NearbySearchRequestedEvent{Lat: &lat, Lng: &lng})
		require.NoError(t, err)

		var fields map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.Equal(t, 41.3851, fields["lat"])
		assert.Equal(t, 2.1734, fields["lng"])
		assert.NotContains(t, fields, "latitude")
		assert.NotContains(t, fields, "longitude")
	})
}

func TestBoundingBox_Extend(t *testing.T) {
	var box domain.BoundingBox
	assert.True(t, box.IsEmpty())

	box = box.Extend(domain.Coordinate{Lat: 41.38, Lng: 2.17})
	assert.False(t, box.IsEmpty())
	assert.Equal(t, 41.38, box.MinLat)
	assert.Equal(t, 41.38, box.MaxLat)

	box = box.Extend(domain.Coordinate{Lat: 41.40, Lng: 2.15})
	box = box.Extend(domain.Coordinate{Lat: 41.39, Lng: 2.19})

	assert.Equal(t, 41.38, box.MinLat)
	assert.Equal(t, 41.40, box.MaxLat)
	assert.Equal(t, 2.15, box.MinLng)
	assert.Equal(t, 2.19, box.MaxLng)
	assert.True(t, box.Contains(domain.Coordinate{Lat: 41.39, Lng: 2.17}))
	assert.False(t, box.Contains(domain.Coordinate{Lat: 41.50, Lng: 2.17}))
	assert.InDelta(t, 41.39, box.Center().Lat, 1e-9)
}

func TestProviderStatus_Retryable(t *testing.T) {
	assert.True(t, domain.StatusOK.Retryable())
	assert.True(t, domain.StatusZeroResults.Retryable())
	assert.False(t, domain.StatusRequestDenied.Retryable())
	assert.False(t, domain.StatusInvalidRequest.Retryable())
	assert.False(t, domain.StatusOverQueryLimit.Retryable())
	assert.False(t, domain.StatusUnknownError.Retryable())
}

func TestSearchSession_Next(t *testing.T) {
	origin := domain.Coordinate{Lat: 1, Lng: 2}
	session := domain.NewSearchSession(origin, 50)

	next := session.Next(1.1)

	assert.Equal(t, 50.0, session.RadiusKm, "previous session value must not change")
	assert.Equal(t, 0, session.Attempt)
	assert.InDelta(t, 55.0, next.RadiusKm, 1e-9)
	assert.Equal(t, 1, next.Attempt)
	assert.Equal(t, origin, next.Origin)
	assert.Equal(t, session.ID, next.ID)

	req := next.Request("restaurant")
	assert.Equal(t, domain.SearchRequest{Origin: origin, RadiusKm: next.RadiusKm, Query: "restaurant"}, req)
}

func TestErrors(t *testing.T) {
	t.Run("location error unwraps and classifies", func(t *testing.T) {
		cause := errors.New("dial tcp: i/o timeout")
		err := fmt.Errorf("locate: %w", domain.NewLocationError(domain.LocationTimeout, cause))

		var locErr *domain.LocationError
		require.True(t, errors.As(err, &locErr))
		assert.Equal(t, domain.LocationTimeout, locErr.Reason)
		assert.ErrorIs(t, err, cause)
		assert.False(t, domain.IsLocationUnsupported(err))
		assert.Equal(t, "Error: The Geolocation service failed.", locErr.UserMessage())
	})

	t.Run("unsupported location message", func(t *testing.T) {
		assert.True(t, domain.IsLocationUnsupported(domain.ErrLocationUnsupported))
		assert.Equal(t, "Error: Your device doesn't support geolocation.", domain.ErrLocationUnsupported.UserMessage())
	})

	t.Run("search error kind and event error", func(t *testing.T) {
		err := &domain.SearchError{
			Kind:     domain.SearchProviderFatal,
			Status:   domain.StatusRequestDenied,
			Attempts: 1,
			RadiusKm: 50,
		}
		wrapped := fmt.Errorf("session: %w", err)

		assert.True(t, domain.IsSearchErrorKind(wrapped, domain.SearchProviderFatal))
		assert.False(t, domain.IsSearchErrorKind(wrapped, domain.SearchExhausted))
		assert.Contains(t, err.Error(), "REQUEST_DENIED")

		eventErr := domain.NewEventError(wrapped)
		assert.Equal(t, "provider_fatal", eventErr.Kind)
		assert.Equal(t, domain.StatusRequestDenied, eventErr.Status)
	})
}
