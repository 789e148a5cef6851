package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
	"github.com/nearby-places/internal/pkg/errors"
	"github.com/nearby-places/internal/usecase/dto"
)

// NearbySessionUseCase связывает определение местоположения, поиск и отдачу событий
type NearbySessionUseCase struct {
	locator *LocatorUseCase
	search  *NearbySearchUseCase
	sink    repository.EventSink
	logger  *zap.Logger
	now     func() time.Time
}

// NewNearbySessionUseCase - создание нового NearbySessionUseCase. sink может быть nil.
func NewNearbySessionUseCase(
	locator *LocatorUseCase,
	search *NearbySearchUseCase,
	sink repository.EventSink,
	logger *zap.Logger,
) *NearbySessionUseCase {
	return &NearbySessionUseCase{
		locator: locator,
		search:  search,
		sink:    sink,
		logger:  logger,
		now:     time.Now,
	}
}

// Run выполняет сессию: Locate -> Search -> проекция результата.
// При ошибке местоположения поиск не запускается.
func (uc *NearbySessionUseCase) Run(ctx context.Context, req dto.NearbySearchRequest) (*dto.NearbySearchResponse, error) {
	return uc.RunWithRetries(ctx, req, 0)
}

// RunWithRetries - то же, что Run, но сбой сети провайдера повторяет поиск до retries раз.
// Событие публикуется один раз, по итоговому результату.
func (uc *NearbySessionUseCase) RunWithRetries(ctx context.Context, req dto.NearbySearchRequest, retries int) (*dto.NearbySearchResponse, error) {
	if req.PartialFix() {
		return nil, errors.ErrInvalidCoordinates.WithMessage("both lat and lng are required")
	}

	origin, err := uc.locator.Locate(ctx, req.Hint())
	if err != nil {
		uc.publish(ctx, domain.SearchEvent{
			Type:      domain.EventLocationError,
			SessionID: uuid.New(),
			RequestID: req.RequestID,
			Error:     domain.NewEventError(err),
		})
		return nil, err
	}

	outcome, err := uc.searchWithRetries(ctx, origin, req.Query, retries)
	if err != nil {
		uc.publish(ctx, domain.SearchEvent{
			Type:      domain.EventSearchError,
			SessionID: searchSessionID(err),
			RequestID: req.RequestID,
			Origin:    &origin,
			Error:     domain.NewEventError(err),
		})
		return nil, err
	}

	acc := ProjectOutcome(outcome)
	bounds := acc.Bounds()

	uc.publish(ctx, domain.SearchEvent{
		Type:      domain.EventResultsReady,
		SessionID: outcome.SessionID,
		RequestID: req.RequestID,
		Origin:    &origin,
		Places:    acc.Places(),
		Markers:   acc.Markers(),
		Bounds:    &bounds,
	})

	return &dto.NearbySearchResponse{
		SessionID: outcome.SessionID,
		Origin:    origin,
		Query:     outcome.Query,
		Places:    acc.Places(),
		Home:      acc.Home(),
		Markers:   acc.Markers(),
		Bounds:    bounds,
		RadiusKm:  outcome.RadiusKm,
		Attempts:  outcome.Attempts,
		Trace:     outcome.Trace,
		Total:     len(acc.Places()),
	}, nil
}

func (uc *NearbySessionUseCase) searchWithRetries(
	ctx context.Context,
	origin domain.Coordinate,
	query string,
	retries int,
) (*domain.SearchOutcome, error) {
	for attempt := 0; ; attempt++ {
		outcome, err := uc.search.SearchQuery(ctx, origin, query)
		if err == nil {
			return outcome, nil
		}
		if !domain.IsSearchErrorKind(err, domain.SearchNetworkFailure) || attempt >= retries || ctx.Err() != nil {
			return nil, err
		}
		uc.logger.Warn("Provider unreachable, retrying search",
			zap.Int("retry", attempt+1),
			zap.Error(err))
	}
}

func searchSessionID(err error) uuid.UUID {
	var searchErr *domain.SearchError
	if stderrors.As(err, &searchErr) && searchErr.SessionID != uuid.Nil {
		return searchErr.SessionID
	}
	return uuid.New()
}

// Select обрабатывает выбор места: расстояние и подпись считаются заново от origin
func (uc *NearbySessionUseCase) Select(ctx context.Context, req dto.SelectPlaceRequest) (*domain.Selection, error) {
	origin := req.Origin.Coordinate()
	place := req.Place.PlaceResult()
	if !origin.Valid() || !place.Location.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}

	selection := SelectPlace(origin, place)

	sessionID := uuid.New()
	if req.SessionID != nil {
		sessionID = *req.SessionID
	}
	uc.publish(ctx, domain.SearchEvent{
		Type:      domain.EventPlaceSelected,
		SessionID: sessionID,
		Origin:    &origin,
		Selection: &selection,
	})

	return &selection, nil
}

func (uc *NearbySessionUseCase) publish(ctx context.Context, event domain.SearchEvent) {
	if uc.sink == nil {
		return
	}
	event.OccurredAt = uc.now().UTC()
	if err := uc.sink.Publish(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish search event",
			zap.String("type", string(event.Type)),
			zap.String("session_id", event.SessionID.String()),
			zap.Error(err))
	}
}
