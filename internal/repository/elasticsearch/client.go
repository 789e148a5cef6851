package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/config"
)

// indexMapping - схема индекса мест
const indexMapping = `{
	"mappings": {
		"properties": {
			"id":       {"type": "keyword"},
			"name":     {"type": "text"},
			"address":  {"type": "text"},
			"types":    {"type": "keyword"},
			"rating":   {"type": "float"},
			"location": {"type": "geo_point"}
		}
	}
}`

// NewClient создает клиент Elasticsearch и проверяет соединение
func NewClient(cfg *config.ElasticsearchConfig, logger *zap.Logger) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := client.Ping(client.Ping.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to ping elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("failed to ping elasticsearch: %s", res.Status())
	}

	logger.Info("Elasticsearch connected",
		zap.Strings("addresses", cfg.Addresses),
		zap.String("index", cfg.Index))

	return client, nil
}

// EnsureIndex создает индекс мест, если его еще нет
func EnsureIndex(ctx context.Context, client *elasticsearch.Client, index string) error {
	exists, err := client.Indices.Exists([]string{index}, client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking index: %w", err)
	}
	exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	res, err := client.Indices.Create(index,
		client.Indices.Create.WithContext(ctx),
		client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("error creating index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating index: %s", res.String())
	}
	return nil
}
