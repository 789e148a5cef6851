package postgresosm

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/config"
)

const connectTimeout = 5 * time.Second

// DB - подключение к OSM PostgreSQL только на чтение
// (planet_osm_* таблицы, загруженные osm2pgsql, с расширением PostGIS)
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New подключается к OSM базе и проверяет, что в ней есть PostGIS и таблицы planet_osm_*
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open osm database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to osm database: %w", err)
	}

	osmDB := &DB{DB: db, logger: logger}
	if err := osmDB.checkSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("OSM PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
	)

	return osmDB, nil
}

type schemaState struct {
	PostGIS bool `db:"postgis"`
	Points  bool `db:"points"`
	Polygon bool `db:"polygons"`
}

func (db *DB) checkSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		SELECT
			EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'postgis') AS postgis,
			to_regclass('%s') IS NOT NULL AS points,
			to_regclass('%s') IS NOT NULL AS polygons`,
		planetPointTable, planetPolygonTable)

	var state schemaState
	if err := db.GetContext(ctx, &state, query); err != nil {
		return fmt.Errorf("failed to inspect osm schema: %w", err)
	}

	switch {
	case !state.PostGIS:
		return fmt.Errorf("postgis extension is not installed in osm database")
	case !state.Points || !state.Polygon:
		return fmt.Errorf("osm tables %s/%s not found, load data with osm2pgsql", planetPointTable, planetPolygonTable)
	}
	return nil
}

// Close закрывает пул соединений
func (db *DB) Close() error {
	db.logger.Info("Closing OSM PostgreSQL connection")
	return db.DB.Close()
}

// Health проверяет соединение для /health
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}
