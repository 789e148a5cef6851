package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
)

type cachedProvider struct {
	next   repository.PlacesProvider
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedPlacesProvider оборачивает провайдера кешем ответов.
// Кешируются только OK и ZERO_RESULTS, ошибки кеша не прерывают запрос.
func NewCachedPlacesProvider(
	next repository.PlacesProvider,
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) repository.PlacesProvider {
	return &cachedProvider{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (p *cachedProvider) Name() string {
	return p.next.Name()
}

func (p *cachedProvider) TextSearch(ctx context.Context, req domain.SearchRequest) (*domain.ProviderResponse, error) {
	cached, err := p.cache.GetProviderResponse(ctx, p.next.Name(), req)
	if err != nil {
		p.logger.Warn("Failed to get provider response from cache", zap.Error(err))
	} else if cached != nil {
		p.logger.Debug("Provider response served from cache",
			zap.String("provider", p.next.Name()),
			zap.Float64("radius_km", req.RadiusKm))
		return cached, nil
	}

	resp, err := p.next.TextSearch(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp != nil && resp.Status.Retryable() {
		if err := p.cache.SetProviderResponse(ctx, p.next.Name(), req, resp, p.ttl); err != nil {
			p.logger.Warn("Failed to cache provider response", zap.Error(err))
		}
	}

	return resp, nil
}
