package geolocation

import (
	"context"

	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
)

// Chain опрашивает источники по порядку и возвращает первую найденную координату.
// Источники, вернувшие unsupported, пропускаются. Если ни один источник не поддерживается,
// результат unsupported, иначе последняя ошибка поддерживаемого источника.
type Chain []repository.Geolocator

func (c Chain) Locate(ctx context.Context, hint domain.LocateHint) (domain.Coordinate, error) {
	var lastErr error
	for _, locator := range c {
		coord, err := locator.Locate(ctx, hint)
		if err == nil {
			return coord, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Coordinate{}, domain.NewLocationError(domain.LocationTimeout, ctxErr)
		}

		if domain.IsLocationUnsupported(err) {
			continue
		}
		lastErr = err
	}

	if lastErr == nil {
		return domain.Coordinate{}, domain.ErrLocationUnsupported
	}
	return domain.Coordinate{}, lastErr
}
