package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/app"
	"github.com/nearby-places/internal/config"
	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/usecase/dto"
)

func testConfig() *config.Config {
	return &config.Config{
		Search: config.SearchConfig{
			Provider:        config.ProviderGoogle,
			Query:           "restaurant",
			InitialRadiusKm: 50,
			GrowthFactor:    1.1,
			MinResults:      10,
			MaxAttempts:     100,
			MaxRadiusKm:     20037.5,
		},
		Google: config.GoogleConfig{
			APIKey:         "test-key",
			BaseURL:        "http://127.0.0.1:1",
			RequestTimeout: 1,
		},
	}
}

func TestBuild_Google(t *testing.T) {
	c, err := app.Build(testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "google", c.Provider.Name())
	assert.Nil(t, c.Redis)
	assert.Nil(t, c.Streams)
	assert.Empty(t, c.HealthChecks)
	assert.NotNil(t, c.Session)
}

func TestBuild_UnknownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Search.Provider = "bing"

	_, err := app.Build(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unknown search provider")
}

func TestBuild_InvalidPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.Search.GrowthFactor = 1

	_, err := app.Build(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "invalid search policy")
}

func TestBuildGeolocator(t *testing.T) {
	cfg := testConfig()
	fix := domain.Coordinate{Lat: 41.3851, Lng: 2.1734}

	coord, err := app.BuildGeolocator(cfg, zap.NewNop()).Locate(context.Background(), domain.LocateHint{Fix: &fix})
	require.NoError(t, err)
	assert.Equal(t, fix, coord)

	_, err = app.BuildGeolocator(cfg, zap.NewNop()).Locate(context.Background(), domain.LocateHint{ClientIP: "8.8.8.8"})
	assert.True(t, domain.IsLocationUnsupported(err))
}

func TestBuild_NoLocationSourceIsUnsupported(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Google.BaseURL = server.URL
	cfg.IPGeo.Enabled = false

	c, err := app.Build(cfg, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Session.Run(context.Background(), dto.NearbySearchRequest{})

	var locErr *domain.LocationError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, domain.LocationUnsupported, locErr.Reason)
	assert.Equal(t, "Error: Your device doesn't support geolocation.", locErr.UserMessage())
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestBuild_UnreachableProviderFailsSession(t *testing.T) {
	c, err := app.Build(testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	lat, lng := 41.3851, 2.1734
	_, err = c.Session.Run(context.Background(), dto.NearbySearchRequest{Lat: &lat, Lng: &lng})

	var searchErr *domain.SearchError
	require.ErrorAs(t, err, &searchErr)
	assert.Equal(t, domain.SearchNetworkFailure, searchErr.Kind)
	assert.Equal(t, 1, searchErr.Attempts)
}
