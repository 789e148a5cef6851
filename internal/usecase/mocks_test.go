package usecase_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/nearby-places/internal/domain"
)

// MockPlacesProvider is a mock of PlacesProvider
type MockPlacesProvider struct {
	mock.Mock
}

func (m *MockPlacesProvider) TextSearch(ctx context.Context, req domain.SearchRequest) (*domain.ProviderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderResponse), args.Error(1)
}

func (m *MockPlacesProvider) Name() string {
	return "mock"
}

// MockGeolocator is a mock of Geolocator
type MockGeolocator struct {
	mock.Mock
}

func (m *MockGeolocator) Locate(ctx context.Context, hint domain.LocateHint) (domain.Coordinate, error) {
	args := m.Called(ctx, hint)
	return args.Get(0).(domain.Coordinate), args.Error(1)
}

// MockEventSink is a mock of EventSink
type MockEventSink struct {
	mock.Mock
}

func (m *MockEventSink) Publish(ctx context.Context, event domain.SearchEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// radiusProvider answers by radius: results appear once the radius reaches threshold.
type radiusProvider struct {
	mu        sync.Mutex
	threshold float64
	count     int
	requests  []domain.SearchRequest
}

func (p *radiusProvider) TextSearch(_ context.Context, req domain.SearchRequest) (*domain.ProviderResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	if req.RadiusKm < p.threshold {
		return &domain.ProviderResponse{Status: domain.StatusOK, Results: makePlaces(req.Origin, 3)}, nil
	}
	return &domain.ProviderResponse{Status: domain.StatusOK, Results: makePlaces(req.Origin, p.count)}, nil
}

func (p *radiusProvider) Name() string {
	return "radius"
}

func (p *radiusProvider) radii() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]float64, 0, len(p.requests))
	for _, r := range p.requests {
		out = append(out, r.RadiusKm)
	}
	return out
}

func makePlaces(origin domain.Coordinate, n int) []domain.PlaceResult {
	places := make([]domain.PlaceResult, 0, n)
	for i := 0; i < n; i++ {
		places = append(places, domain.PlaceResult{
			ID:   fmt.Sprintf("place-%d", i),
			Name: fmt.Sprintf("Place %d", i),
			Location: domain.Coordinate{
				Lat: origin.Lat + float64(i+1)*0.01,
				Lng: origin.Lng - float64(i+1)*0.005,
			},
		})
	}
	return places
}
