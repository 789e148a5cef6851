package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/nearby-places/internal/config"
	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
)

type ipAPIClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewIPAPIClient создает Geolocator, определяющий координаты по IP через ip-api.com
func NewIPAPIClient(cfg *config.IPGeoConfig, logger *zap.Logger) repository.Geolocator {
	return &ipAPIClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city,omitempty"`
	Country string  `json:"country,omitempty"`
}

func (c *ipAPIClient) Locate(ctx context.Context, hint domain.LocateHint) (domain.Coordinate, error) {
	if hint.ClientIP == "" {
		return domain.Coordinate{}, domain.NewLocationError(domain.LocationUnsupported, errors.New("client ip is unknown"))
	}

	ip := net.ParseIP(hint.ClientIP)
	if ip == nil {
		return domain.Coordinate{}, domain.NewLocationError(
			domain.LocationPositionUnavailable,
			fmt.Errorf("client ip %q is not valid", hint.ClientIP),
		)
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
		return domain.Coordinate{}, domain.NewLocationError(
			domain.LocationPositionUnavailable,
			fmt.Errorf("client ip %s is not routable", ip),
		)
	}

	endpoint := fmt.Sprintf("%s/%s?fields=status,message,lat,lon,city,country", c.baseURL, url.PathEscape(ip.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("IP geolocation request failed", zap.Error(err))
		reason := domain.LocationPositionUnavailable
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			reason = domain.LocationTimeout
		}
		return domain.Coordinate{}, domain.NewLocationError(reason, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.Coordinate{}, domain.NewLocationError(
			domain.LocationPermissionDenied,
			fmt.Errorf("ip geolocation denied: status %d", resp.StatusCode),
		)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn("IP geolocation returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return domain.Coordinate{}, domain.NewLocationError(
			domain.LocationPositionUnavailable,
			fmt.Errorf("ip geolocation error: status %d", resp.StatusCode),
		)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Coordinate{}, domain.NewLocationError(
			domain.LocationPositionUnavailable,
			fmt.Errorf("failed to decode response: %w", err),
		)
	}

	if body.Status != "success" {
		return domain.Coordinate{}, domain.NewLocationError(
			domain.LocationPositionUnavailable,
			fmt.Errorf("ip geolocation failed: %s", body.Message),
		)
	}

	c.logger.Debug("Located client by ip",
		zap.String("city", body.City),
		zap.String("country", body.Country))

	return domain.Coordinate{Lat: body.Lat, Lng: body.Lon}, nil
}
