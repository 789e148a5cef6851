package repository

import (
	"context"
	"time"

	"github.com/nearby-places/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetProviderResponse получает сохраненный ответ провайдера
	GetProviderResponse(ctx context.Context, provider string, req domain.SearchRequest) (*domain.ProviderResponse, error)

	// SetProviderResponse сохраняет ответ провайдера
	SetProviderResponse(ctx context.Context, provider string, req domain.SearchRequest, resp *domain.ProviderResponse, ttl time.Duration) error
}
