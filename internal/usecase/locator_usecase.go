package usecase

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
)

// LocatorUseCase - однократное определение местоположения клиента
type LocatorUseCase struct {
	geolocator repository.Geolocator
	logger     *zap.Logger
}

// NewLocatorUseCase - создание нового LocatorUseCase. geolocator может быть nil,
// тогда любой запрос завершается ошибкой unsupported.
func NewLocatorUseCase(geolocator repository.Geolocator, logger *zap.Logger) *LocatorUseCase {
	return &LocatorUseCase{
		geolocator: geolocator,
		logger:     logger,
	}
}

// Locate возвращает текущую координату клиента. Повторов нет.
func (uc *LocatorUseCase) Locate(ctx context.Context, hint domain.LocateHint) (domain.Coordinate, error) {
	if uc.geolocator == nil {
		return domain.Coordinate{}, domain.NewLocationError(domain.LocationUnsupported, nil)
	}

	coord, err := uc.geolocator.Locate(ctx, hint)
	if err != nil {
		var locErr *domain.LocationError
		if stderrors.As(err, &locErr) {
			uc.logger.Info("Location unavailable", zap.String("reason", string(locErr.Reason)), zap.Error(err))
			return domain.Coordinate{}, locErr
		}

		reason := domain.LocationPositionUnavailable
		if stderrors.Is(err, context.DeadlineExceeded) {
			reason = domain.LocationTimeout
		}
		uc.logger.Warn("Geolocator failed", zap.String("reason", string(reason)), zap.Error(err))
		return domain.Coordinate{}, domain.NewLocationError(reason, err)
	}

	if !coord.Valid() {
		uc.logger.Warn("Geolocator returned invalid coordinate",
			zap.Float64("lat", coord.Lat),
			zap.Float64("lng", coord.Lng))
		return domain.Coordinate{}, domain.NewLocationError(
			domain.LocationPositionUnavailable,
			fmt.Errorf("invalid coordinate %v,%v", coord.Lat, coord.Lng),
		)
	}

	return coord, nil
}
