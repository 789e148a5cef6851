package repository

import (
	"context"

	"github.com/nearby-places/internal/domain"
)

// Geolocator определяет источник текущего местоположения клиента.
// Один запрос, без повторов и без постоянного отслеживания.
type Geolocator interface {
	// Locate возвращает координату или *domain.LocationError
	Locate(ctx context.Context, hint domain.LocateHint) (domain.Coordinate, error)
}
