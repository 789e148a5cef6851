package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nearby-places/internal/config"
	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
)

// MaxRadiusMeters - максимальный радиус, который принимает Text Search
const MaxRadiusMeters = 50000

const providerName = "google"

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewPlacesClient создает клиент Google Places Text Search.
// RateLimit ограничивает число запросов в секунду, 0 - без ограничения.
func NewPlacesClient(cfg *config.GoogleConfig, logger *zap.Logger) repository.PlacesProvider {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}

	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		limiter:  limiter,
		logger:   logger,
	}
}

func (c *client) Name() string {
	return providerName
}

// TextSearch выполняет один запрос Text Search. Статус ответа провайдера
// возвращается как есть, ошибка - только при сбое транспорта или разбора ответа.
func (c *client) TextSearch(ctx context.Context, req domain.SearchRequest) (*domain.ProviderResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("query", req.Query)
	params.Set("location", fmt.Sprintf("%f,%f", req.Origin.Lat, req.Origin.Lng))
	params.Set("radius", strconv.Itoa(RadiusMeters(req.RadiusKm)))
	params.Set("key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	endpoint := c.baseURL + "/textsearch/json?" + params.Encode()

	c.logger.Debug("Calling Google Places Text Search",
		zap.String("query", req.Query),
		zap.Float64("radius_km", req.RadiusKm))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Google Places API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("google places API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var searchResp textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	status := mapStatus(searchResp.Status)
	if !status.Retryable() {
		c.logger.Warn("Google Places API returned non-OK status",
			zap.String("status", searchResp.Status),
			zap.String("error_message", searchResp.ErrorMessage))
	}

	results := make([]domain.PlaceResult, 0, len(searchResp.Results))
	for _, r := range searchResp.Results {
		results = append(results, r.toDomain())
	}

	c.logger.Debug("Google Places Text Search call successful",
		zap.String("status", string(status)),
		zap.Int("results", len(results)))

	return &domain.ProviderResponse{Status: status, Results: results}, nil
}

// RadiusMeters переводит радиус в метры с ограничением сверху
func RadiusMeters(radiusKm float64) int {
	meters := int(math.Round(radiusKm * 1000))
	if meters > MaxRadiusMeters {
		return MaxRadiusMeters
	}
	if meters < 1 {
		return 1
	}
	return meters
}

func mapStatus(status string) domain.ProviderStatus {
	switch domain.ProviderStatus(status) {
	case domain.StatusOK,
		domain.StatusZeroResults,
		domain.StatusOverQueryLimit,
		domain.StatusRequestDenied,
		domain.StatusInvalidRequest,
		domain.StatusNotFound,
		domain.StatusUnknownError:
		return domain.ProviderStatus(status)
	default:
		return domain.StatusUnknownError
	}
}

type textSearchResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	Results      []placeWire `json:"results"`
}

type placeWire struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Vicinity         string   `json:"vicinity"`
	Types            []string `json:"types"`
	Rating           *float64 `json:"rating"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

func (p placeWire) toDomain() domain.PlaceResult {
	address := p.FormattedAddress
	if address == "" {
		address = p.Vicinity
	}
	return domain.PlaceResult{
		ID:      p.PlaceID,
		Name:    p.Name,
		Address: address,
		Location: domain.Coordinate{
			Lat: p.Geometry.Location.Lat,
			Lng: p.Geometry.Location.Lng,
		},
		Types:  p.Types,
		Rating: p.Rating,
	}
}
