package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/config"
	httpDelivery "github.com/nearby-places/internal/delivery/http"
	"github.com/nearby-places/internal/delivery/http/handler"
	"github.com/nearby-places/internal/delivery/http/middleware"
	"github.com/nearby-places/internal/usecase"
)

func newServer(t *testing.T, checks map[string]httpDelivery.HealthCheck) *httpDelivery.Server {
	t.Helper()

	search, err := usecase.NewNearbySearchUseCase(nil, usecase.DefaultSearchPolicy(), zap.NewNop())
	require.NoError(t, err)
	session := usecase.NewNearbySessionUseCase(usecase.NewLocatorUseCase(nil, zap.NewNop()), search, nil, zap.NewNop())

	cfg := &config.Config{
		Server: config.ServerConfig{CORSOrigins: "http://localhost:5173"},
		Search: config.SearchConfig{Provider: config.ProviderGoogle},
	}
	return httpDelivery.NewServer(cfg, zap.NewNop(), handler.NewNearbyHandler(session, zap.NewNop()), checks)
}

func health(t *testing.T, s *httpDelivery.Server) (int, map[string]interface{}) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestServer_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		s := newServer(t, map[string]httpDelivery.HealthCheck{
			"redis": func(context.Context) error { return nil },
		})

		status, body := health(t, s)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "google", body["provider"])
	})

	t.Run("failing dependency", func(t *testing.T) {
		s := newServer(t, map[string]httpDelivery.HealthCheck{
			"redis":  func(context.Context) error { return nil },
			"osm_db": func(context.Context) error { return errors.New("connection refused") },
		})

		status, body := health(t, s)

		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "unhealthy", body["status"])
		checks := body["checks"].(map[string]interface{})
		assert.Equal(t, "connection refused", checks["osm_db"])
		assert.Equal(t, "ok", checks["redis"])
	})
}

func TestServer_NotFound(t *testing.T) {
	s := newServer(t, nil)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_LocationUnsupported(t *testing.T) {
	s := newServer(t, nil)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/nearby/search", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestServer_CORS(t *testing.T) {
	s := newServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/nearby/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestRecovery(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.Recovery(zap.NewNop()))
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
