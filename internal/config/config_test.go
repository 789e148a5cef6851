package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearby-places/internal/config"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	path := writeEnvFile(t, "GOOGLE_PLACES_API_KEY=test_key\n")

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, config.ProviderGoogle, cfg.Search.Provider)
	assert.Equal(t, "restaurant", cfg.Search.Query)
	assert.Equal(t, 50.0, cfg.Search.InitialRadiusKm)
	assert.Equal(t, 1.1, cfg.Search.GrowthFactor)
	assert.Equal(t, 10, cfg.Search.MinResults)
	assert.Equal(t, 100, cfg.Search.MaxAttempts)
	assert.Equal(t, 20037.5, cfg.Search.MaxRadiusKm)
	assert.Equal(t, 10*time.Second, cfg.Search.AttemptTimeout)
	assert.Equal(t, "test_key", cfg.Google.APIKey)
	assert.Equal(t, "nearby-search-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, []string{"http://localhost:9200"}, cfg.Elasticsearch.Addresses)
	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
	assert.Equal(t, 10, cfg.Google.RateLimit)
	assert.Equal(t, "http://localhost:3000,http://localhost:5173", cfg.Server.CORSOrigins)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "osm-db",
		Port:     5432,
		User:     "osm",
		Password: "secret",
		DBName:   "planet",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=osm-db port=5432 user=osm password=secret dbname=planet sslmode=disable", cfg.DSN())
}

func TestLoadFrom_FileValues(t *testing.T) {
	path := writeEnvFile(t, `API_HOST=0.0.0.0
API_PORT=9090
SEARCH_PROVIDER=Elasticsearch
SEARCH_INITIAL_RADIUS_KM=2.5
SEARCH_MIN_RESULTS=5
SEARCH_CACHE_TTL=300
ELASTICSEARCH_ADDRESSES=http://es1:9200, http://es2:9200
REDIS_ENABLED=true
`)

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddr())
	assert.Equal(t, config.ProviderElasticsearch, cfg.Search.Provider)
	assert.Equal(t, 2.5, cfg.Search.InitialRadiusKm)
	assert.Equal(t, 5, cfg.Search.MinResults)
	assert.Equal(t, 5*time.Minute, cfg.Cache.SearchCacheTTL)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Elasticsearch.Addresses)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoadFrom_MissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("SEARCH_PROVIDER", "osm")
	t.Setenv("OSM_DB_HOST", "osm-db")

	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, config.ProviderOSM, cfg.Search.Provider)
	assert.Equal(t, "osm-db", cfg.OSMDB.Host)
	assert.Contains(t, cfg.GetOSMDatabaseDSN(), "host=osm-db")
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		path := writeEnvFile(t, "SEARCH_PROVIDER=bing\n")
		_, err := config.LoadFrom(path)
		assert.ErrorContains(t, err, "unknown search provider")
	})

	t.Run("growth factor must grow the radius", func(t *testing.T) {
		path := writeEnvFile(t, "SEARCH_PROVIDER=osm\nSEARCH_GROWTH_FACTOR=0.9\n")
		_, err := config.LoadFrom(path)
		assert.ErrorContains(t, err, "growth factor")
	})

	t.Run("google provider requires api key", func(t *testing.T) {
		path := writeEnvFile(t, "SEARCH_PROVIDER=google\n")
		_, err := config.LoadFrom(path)
		assert.ErrorContains(t, err, "GOOGLE_PLACES_API_KEY")
	})
}
