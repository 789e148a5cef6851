package postgresosm

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nearby-places/internal/config"
)

// testDBConfig reads the OSM test database from OSM_DB_* variables,
// defaulting to the osm_db docker-compose service
func testDBConfig() *config.DatabaseConfig {
	port, err := strconv.Atoi(getEnv("OSM_DB_PORT", "5435"))
	if err != nil {
		port = 5435
	}

	return &config.DatabaseConfig{
		Host:            getEnv("OSM_DB_HOST", "localhost"),
		Port:            port,
		User:            getEnv("OSM_DB_USER", "osmuser"),
		Password:        getEnv("OSM_DB_PASSWORD", "osmpass"),
		DBName:          getEnv("OSM_DB_NAME", "osm"),
		SSLMode:         getEnv("OSM_DB_SSLMODE", "disable"),
		MaxConns:        5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupTestDB connects to the OSM test database or skips the test
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(testDBConfig(), zap.NewNop())
	if err != nil {
		t.Skipf("OSM database not available: %v", err)
	}
	return db
}

func teardownTestDB(t *testing.T, db *DB) {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close test database: %v", err)
	}
}

// skipIfNoOSMData skips the test if no named points are loaded
func skipIfNoOSMData(t *testing.T, db *DB) {
	t.Helper()

	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE name IS NOT NULL)", planetPointTable)
	if err := db.QueryRowContext(context.Background(), query).Scan(&exists); err != nil {
		t.Skipf("OSM data not available: %v", err)
	}
	if !exists {
		t.Skip("OSM data not loaded")
	}
}

func assertValidCoordinates(t *testing.T, lat, lon float64) {
	t.Helper()
	if lat < -90 || lat > 90 {
		t.Errorf("Invalid latitude: %f (must be between -90 and 90)", lat)
	}
	if lon < -180 || lon > 180 {
		t.Errorf("Invalid longitude: %f (must be between -180 and 180)", lon)
	}
}
