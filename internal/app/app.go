package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nearby-places/internal/config"
	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
	"github.com/nearby-places/internal/infrastructure/geolocation"
	"github.com/nearby-places/internal/infrastructure/googleplaces"
	"github.com/nearby-places/internal/repository/cache"
	"github.com/nearby-places/internal/repository/elasticsearch"
	"github.com/nearby-places/internal/repository/postgresosm"
	redisRepo "github.com/nearby-places/internal/repository/redis"
	"github.com/nearby-places/internal/usecase"
)

// Components - собранные зависимости сессии поиска, общие для API и воркера
type Components struct {
	Provider   repository.PlacesProvider
	Geolocator repository.Geolocator
	Session    *usecase.NearbySessionUseCase

	// Redis и Streams равны nil, если REDIS_ENABLED=false
	Redis   *cache.Redis
	Streams repository.StreamRepository

	// HealthChecks по имени зависимости
	HealthChecks map[string]func(ctx context.Context) error

	closers []func() error
	logger  *zap.Logger
}

// Build подключается к хранилищам и собирает провайдера, геолокатор и сессию поиска
func Build(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	c := &Components{
		HealthChecks: make(map[string]func(ctx context.Context) error),
		logger:       logger,
	}

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		c.Redis = redisClient
		c.Streams = redisRepo.NewStreamRepository(redisClient.Client(), logger)
		c.closers = append(c.closers, redisClient.Close)
		c.HealthChecks["redis"] = redisClient.Health
	}

	provider, err := c.buildProvider(cfg)
	if err != nil {
		c.Close()
		return nil, err
	}

	if c.Redis != nil && cfg.Cache.SearchCacheTTL > 0 {
		provider = cache.NewCachedPlacesProvider(
			provider,
			cache.NewCacheRepository(c.Redis),
			cfg.Cache.SearchCacheTTL,
			logger,
		)
	}
	c.Provider = provider

	c.Geolocator = BuildGeolocator(cfg, logger)

	search, err := usecase.NewNearbySearchUseCase(provider, usecase.SearchPolicyFromConfig(cfg.Search), logger)
	if err != nil {
		c.Close()
		return nil, err
	}

	var sink repository.EventSink
	if c.Streams != nil {
		sink = redisRepo.NewStreamEventSink(c.Streams, domain.StreamNearbyEvents)
	}

	c.Session = usecase.NewNearbySessionUseCase(
		usecase.NewLocatorUseCase(c.Geolocator, logger),
		search,
		sink,
		logger,
	)

	logger.Info("Nearby search initialized",
		zap.String("provider", provider.Name()),
		zap.Bool("events", sink != nil),
		zap.Bool("ip_geolocation", cfg.IPGeo.Enabled))

	return c, nil
}

func (c *Components) buildProvider(cfg *config.Config) (repository.PlacesProvider, error) {
	switch cfg.Search.Provider {
	case config.ProviderGoogle:
		return googleplaces.NewPlacesClient(&cfg.Google, c.logger), nil

	case config.ProviderOSM:
		db, err := postgresosm.New(&cfg.OSMDB, c.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to OSM database: %w", err)
		}
		c.closers = append(c.closers, db.Close)
		c.HealthChecks["osm_db"] = db.Health
		return postgresosm.NewPlacesProvider(db, c.logger), nil

	case config.ProviderElasticsearch:
		client, err := elasticsearch.NewClient(&cfg.Elasticsearch, c.logger)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Search.AttemptTimeout)
		defer cancel()
		if err := elasticsearch.EnsureIndex(ctx, client, cfg.Elasticsearch.Index); err != nil {
			return nil, err
		}
		c.HealthChecks["elasticsearch"] = func(ctx context.Context) error {
			res, err := client.Ping(client.Ping.WithContext(ctx))
			if err != nil {
				return err
			}
			defer res.Body.Close()
			if res.IsError() {
				return fmt.Errorf("elasticsearch ping: %s", res.Status())
			}
			return nil
		}
		return elasticsearch.NewPlacesProvider(client, cfg.Elasticsearch.Index, c.logger), nil
	}

	return nil, fmt.Errorf("unknown search provider %q", cfg.Search.Provider)
}

// BuildGeolocator собирает цепочку источников местоположения:
// координаты устройства, затем IP клиента, если включено
func BuildGeolocator(cfg *config.Config, logger *zap.Logger) repository.Geolocator {
	chain := geolocation.Chain{geolocation.NewDeviceFix()}
	if cfg.IPGeo.Enabled {
		chain = append(chain, geolocation.NewIPAPIClient(&cfg.IPGeo, logger))
	}
	return chain
}

// Close закрывает подключения в обратном порядке
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.logger.Error("Failed to close connection", zap.Error(err))
		}
	}
	c.closers = nil
}
