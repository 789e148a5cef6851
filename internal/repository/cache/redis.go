package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/config"
)

const (
	connectTimeout = 5 * time.Second
	dialTimeout    = 3 * time.Second
)

// Redis - общий клиент для кеша ответов провайдера и стримов поиска
type Redis struct {
	client *redis.Client
	addr   string
	logger *zap.Logger
}

// NewRedis подключается к Redis и проверяет соединение PING.
// При ошибке клиент закрывается.
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	opts := &redis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	logger.Info("Redis connected",
		zap.String("addr", opts.Addr),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", client.Options().PoolSize),
	)

	return &Redis{
		client: client,
		addr:   opts.Addr,
		logger: logger,
	}, nil
}

func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection", zap.String("addr", r.addr))
	return r.client.Close()
}

// Health проверяет соединение для /health
func (r *Redis) Health(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis %s: %w", r.addr, err)
	}
	return nil
}

func (r *Redis) Client() *redis.Client {
	return r.client
}
