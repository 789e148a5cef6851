package postgresosm

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
)

const providerName = "osm"

type placesProvider struct {
	db     *DB
	logger *zap.Logger
}

// NewPlacesProvider создает провайдера мест поверх OSM базы. Только чтение.
func NewPlacesProvider(db *DB, logger *zap.Logger) repository.PlacesProvider {
	return &placesProvider{
		db:     db,
		logger: logger,
	}
}

type placeRow struct {
	OSMID       int64   `db:"osm_id"`
	Name        string  `db:"name"`
	Category    string  `db:"category"`
	Street      string  `db:"street"`
	HouseNumber string  `db:"housenumber"`
	City        string  `db:"city"`
	Cuisine     string  `db:"cuisine"`
	Lat         float64 `db:"lat"`
	Lon         float64 `db:"lon"`
	Distance    float64 `db:"distance"`
}

func (r placeRow) toDomain() domain.PlaceResult {
	types := []string{r.Category}
	if r.Cuisine != "" {
		types = append(types, r.Cuisine)
	}
	return domain.PlaceResult{
		ID:      "osm:" + strconv.FormatInt(r.OSMID, 10),
		Name:    ensureName(r.Name, r.Category, r.OSMID),
		Address: formatAddress(r.Street, r.HouseNumber, r.City),
		Location: domain.Coordinate{
			Lat: r.Lat,
			Lng: r.Lon,
		},
		Types: types,
	}
}

var nearbySQL = fmt.Sprintf(`
	WITH point AS (
		SELECT ST_SetSRID(ST_MakePoint($1, $2), %d)::geography AS geom
	), data AS (
		SELECT
			osm_id,
			name,
			%s AS category,
			tags,
			ST_Transform(way, %d) AS w4326
		FROM (%s) src
		WHERE amenity = ANY($4) OR shop = ANY($4) OR tourism = ANY($4) OR leisure = ANY($4)
		   OR tags->'cuisine' = ANY($4)
		   OR name ILIKE $5
	)
	SELECT
		osm_id,
		COALESCE(name, '') AS name,
		category,
		COALESCE(tags->'addr:street', '') AS street,
		COALESCE(tags->'addr:housenumber', '') AS housenumber,
		COALESCE(tags->'addr:city', '') AS city,
		COALESCE(tags->'cuisine', '') AS cuisine,
		ST_Y(w4326) AS lat,
		ST_X(w4326) AS lon,
		ST_Distance(w4326::geography, point.geom) AS distance
	FROM data, point
	WHERE ST_DWithin(w4326::geography, point.geom, $3)
	ORDER BY distance
	LIMIT $6
`, SRID4326, categoryExpr, SRID4326, placeSelect)

func (p *placesProvider) Name() string {
	return providerName
}

// TextSearch ищет места в радиусе, ближайшие первыми.
// Ошибка БД возвращается как ошибка, пустой результат - как ZERO_RESULTS.
func (p *placesProvider) TextSearch(ctx context.Context, req domain.SearchRequest) (*domain.ProviderResponse, error) {
	values := tagValues(req.Query)
	if len(values) == 0 || req.RadiusKm <= 0 {
		return &domain.ProviderResponse{Status: domain.StatusInvalidRequest}, nil
	}

	radiusMeters := req.RadiusKm * 1000

	var rows []placeRow
	err := p.db.SelectContext(ctx, &rows, nearbySQL,
		req.Origin.Lng,
		req.Origin.Lat,
		radiusMeters,
		pq.Array(values),
		likePattern(req.Query),
		LimitPlaces,
	)
	if err != nil {
		p.logger.Error("failed to query nearby osm places",
			zap.String("query", req.Query),
			zap.Float64("radius_km", req.RadiusKm),
			zap.Error(err))
		return nil, fmt.Errorf("query nearby osm places: %w", err)
	}

	if len(rows) == 0 {
		return &domain.ProviderResponse{Status: domain.StatusZeroResults}, nil
	}

	results := make([]domain.PlaceResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, row.toDomain())
	}

	p.logger.Debug("osm places found",
		zap.String("query", req.Query),
		zap.Float64("radius_km", req.RadiusKm),
		zap.Int("count", len(results)))

	return &domain.ProviderResponse{Status: domain.StatusOK, Results: results}, nil
}
