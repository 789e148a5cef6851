package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
)

const (
	providerName = "elasticsearch"

	// LimitPlaces - размер одной выдачи
	LimitPlaces = 60
)

type placesProvider struct {
	client *elasticsearch.Client
	index  string
	logger *zap.Logger
}

// NewPlacesProvider создает провайдера мест поверх индекса Elasticsearch
func NewPlacesProvider(client *elasticsearch.Client, index string, logger *zap.Logger) repository.PlacesProvider {
	return &placesProvider{
		client: client,
		index:  index,
		logger: logger,
	}
}

// placeDocument - документ в индексе мест
type placeDocument struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address,omitempty"`
	Types    []string `json:"types,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Location geoPoint `json:"location"`
}

type geoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string        `json:"_id"`
			Source placeDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (p *placesProvider) Name() string {
	return providerName
}

func buildQuery(req domain.SearchRequest) map[string]interface{} {
	point := geoPoint{Lat: req.Origin.Lat, Lon: req.Origin.Lng}

	return map[string]interface{}{
		"size": LimitPlaces,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  req.Query,
						"fields": []string{"name^2", "types", "address"},
					},
				},
				"filter": map[string]interface{}{
					"geo_distance": map[string]interface{}{
						"distance": fmt.Sprintf("%.3fkm", req.RadiusKm),
						"location": point,
					},
				},
			},
		},
		"sort": []map[string]interface{}{
			{
				"_geo_distance": map[string]interface{}{
					"location":        point,
					"order":           "asc",
					"unit":            "km",
					"mode":            "min",
					"distance_type":   "arc",
					"ignore_unmapped": true,
				},
			},
		},
	}
}

// TextSearch ищет документы в радиусе, ближайшие первыми.
// Коды ошибок Elasticsearch переводятся в статусы провайдера.
func (p *placesProvider) TextSearch(ctx context.Context, req domain.SearchRequest) (*domain.ProviderResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(req)); err != nil {
		return nil, fmt.Errorf("error encoding query: %w", err)
	}

	res, err := p.client.Search(
		p.client.Search.WithContext(ctx),
		p.client.Search.WithIndex(p.index),
		p.client.Search.WithBody(&buf),
	)
	if err != nil {
		p.logger.Error("Elasticsearch search failed", zap.Error(err))
		return nil, fmt.Errorf("error getting response: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		status := statusFromHTTP(res.StatusCode)
		p.logger.Warn("Elasticsearch returned error",
			zap.Int("status_code", res.StatusCode),
			zap.String("status", string(status)),
			zap.String("body", string(body)))
		if status == "" {
			return nil, fmt.Errorf("elasticsearch error: status %d", res.StatusCode)
		}
		return &domain.ProviderResponse{Status: status}, nil
	}

	var result searchResponse
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing the response body: %w", err)
	}

	if len(result.Hits.Hits) == 0 {
		return &domain.ProviderResponse{Status: domain.StatusZeroResults}, nil
	}

	places := make([]domain.PlaceResult, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		doc := hit.Source
		id := doc.ID
		if id == "" {
			id = hit.ID
		}
		places = append(places, domain.PlaceResult{
			ID:       id,
			Name:     doc.Name,
			Address:  doc.Address,
			Location: domain.Coordinate{Lat: doc.Location.Lat, Lng: doc.Location.Lon},
			Types:    doc.Types,
			Rating:   doc.Rating,
		})
	}

	return &domain.ProviderResponse{Status: domain.StatusOK, Results: places}, nil
}

// statusFromHTTP переводит HTTP-код ответа в статус провайдера.
// Пустой статус - ошибка сервера, которую стоит считать сбоем транспорта.
func statusFromHTTP(code int) domain.ProviderStatus {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return domain.StatusRequestDenied
	case code == http.StatusTooManyRequests:
		return domain.StatusOverQueryLimit
	case code == http.StatusNotFound:
		return domain.StatusNotFound
	case code >= 400 && code < 500:
		return domain.StatusInvalidRequest
	default:
		return ""
	}
}
