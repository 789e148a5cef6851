package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetProviderResponse получает ответ провайдера из кеша
func (r *cacheRepository) GetProviderResponse(
	ctx context.Context,
	provider string,
	req domain.SearchRequest,
) (*domain.ProviderResponse, error) {
	data, err := r.Get(ctx, ProviderResponseKey(provider, req))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var resp domain.ProviderResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		r.logger.Error("Failed to unmarshal provider response from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal provider response: %w", err)
	}

	return &resp, nil
}

// SetProviderResponse сохраняет ответ провайдера в кеше
func (r *cacheRepository) SetProviderResponse(
	ctx context.Context,
	provider string,
	req domain.SearchRequest,
	resp *domain.ProviderResponse,
	ttl time.Duration,
) error {
	data, err := json.Marshal(resp)
	if err != nil {
		r.logger.Error("Failed to marshal provider response", zap.Error(err))
		return fmt.Errorf("marshal provider response: %w", err)
	}

	return r.Set(ctx, ProviderResponseKey(provider, req), data, ttl)
}

// ProviderResponseKey - ключ кеша для одного запроса к провайдеру
func ProviderResponseKey(provider string, req domain.SearchRequest) string {
	query := strings.ToLower(strings.TrimSpace(req.Query))
	return fmt.Sprintf("places:%s:%s:%.5f:%.5f:%.3f",
		provider, query, req.Origin.Lat, req.Origin.Lng, req.RadiusKm)
}
