package geolocation

import (
	"context"
	"errors"

	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
)

var errNoDeviceFix = errors.New("client did not send device coordinates")

type deviceFix struct{}

// NewDeviceFix возвращает Geolocator, который отдает координаты, присланные устройством клиента.
// Если клиент не прислал координаты, источник считается неподдерживаемым.
func NewDeviceFix() repository.Geolocator {
	return deviceFix{}
}

func (deviceFix) Locate(_ context.Context, hint domain.LocateHint) (domain.Coordinate, error) {
	if hint.Fix == nil {
		return domain.Coordinate{}, domain.NewLocationError(domain.LocationUnsupported, errNoDeviceFix)
	}
	if !hint.Fix.Valid() {
		return domain.Coordinate{}, domain.NewLocationError(domain.LocationPositionUnavailable, errors.New("device coordinates out of range"))
	}
	return *hint.Fix, nil
}
