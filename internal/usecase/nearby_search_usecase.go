package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nearby-places/internal/config"
	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
	"github.com/nearby-places/internal/pkg/errors"
	"github.com/nearby-places/internal/pkg/geo"
)

// SearchPolicy - параметры цикла расширения радиуса
type SearchPolicy struct {
	Query           string
	InitialRadiusKm float64
	GrowthFactor    float64
	MinResults      int
	MaxAttempts     int
	MaxRadiusKm     float64
	// AttemptTimeout ограничивает один запрос к провайдеру, 0 - без ограничения
	AttemptTimeout time.Duration
}

// DefaultSearchPolicy возвращает политику по умолчанию: 50 км, x1.1, минимум 10 мест
func DefaultSearchPolicy() SearchPolicy {
	return SearchPolicy{
		Query:           domain.DefaultQuery,
		InitialRadiusKm: 50,
		GrowthFactor:    1.1,
		MinResults:      10,
		MaxAttempts:     100,
		MaxRadiusKm:     20037.5,
	}
}

// SearchPolicyFromConfig строит политику из конфигурации
func SearchPolicyFromConfig(cfg config.SearchConfig) SearchPolicy {
	return SearchPolicy{
		Query:           cfg.Query,
		InitialRadiusKm: cfg.InitialRadiusKm,
		GrowthFactor:    cfg.GrowthFactor,
		MinResults:      cfg.MinResults,
		MaxAttempts:     cfg.MaxAttempts,
		MaxRadiusKm:     cfg.MaxRadiusKm,
		AttemptTimeout:  cfg.AttemptTimeout,
	}
}

// Validate проверяет, что политика гарантирует строго растущий радиус и конечный цикл
func (p SearchPolicy) Validate() error {
	if !geo.ValidateRadius(p.InitialRadiusKm) {
		return fmt.Errorf("initial radius %v km is out of range", p.InitialRadiusKm)
	}
	if p.GrowthFactor <= 1 {
		return fmt.Errorf("growth factor must be greater than 1, got %v", p.GrowthFactor)
	}
	if p.MinResults < 1 {
		return fmt.Errorf("min results must be at least 1, got %d", p.MinResults)
	}
	if p.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", p.MaxAttempts)
	}
	if p.MaxRadiusKm < p.InitialRadiusKm {
		return fmt.Errorf("max radius %v km is below initial radius %v km", p.MaxRadiusKm, p.InitialRadiusKm)
	}
	return nil
}

// NearbySearchUseCase - поиск мест рядом с точкой с расширением радиуса
type NearbySearchUseCase struct {
	provider repository.PlacesProvider
	policy   SearchPolicy
	logger   *zap.Logger
}

// NewNearbySearchUseCase - создание нового NearbySearchUseCase
func NewNearbySearchUseCase(
	provider repository.PlacesProvider,
	policy SearchPolicy,
	logger *zap.Logger,
) (*NearbySearchUseCase, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search policy: %w", err)
	}
	if policy.Query == "" {
		policy.Query = domain.DefaultQuery
	}

	return &NearbySearchUseCase{
		provider: provider,
		policy:   policy,
		logger:   logger,
	}, nil
}

// Policy возвращает политику поиска
func (uc *NearbySearchUseCase) Policy() SearchPolicy {
	return uc.policy
}

// Search ищет места по запросу из политики
func (uc *NearbySearchUseCase) Search(ctx context.Context, origin domain.Coordinate) (*domain.SearchOutcome, error) {
	return uc.SearchQuery(ctx, origin, "")
}

// SearchQuery запускает цикл: запрос -> при нехватке результатов радиус *= GrowthFactor -> повтор.
// Запросы выполняются строго последовательно. Успех - первые MinResults результатов
// в порядке провайдера с расстоянием от origin.
func (uc *NearbySearchUseCase) SearchQuery(
	ctx context.Context,
	origin domain.Coordinate,
	query string,
) (*domain.SearchOutcome, error) {
	if !origin.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}
	if query == "" {
		query = uc.policy.Query
	}

	session := domain.NewSearchSession(origin, uc.policy.InitialRadiusKm)
	trace := make([]domain.AttemptTrace, 0, 8)

	log := uc.logger.With(
		zap.String("session_id", session.ID.String()),
		zap.String("provider", uc.provider.Name()),
		zap.String("query", query),
	)

	for {
		if err := ctx.Err(); err != nil {
			log.Info("Search cancelled", zap.Int("attempts", session.Attempt))
			return nil, &domain.SearchError{
				SessionID: session.ID,
				Kind:      domain.SearchCancelled,
				Attempts:  session.Attempt,
				RadiusKm:  session.RadiusKm,
				Err:       err,
			}
		}

		if session.Attempt >= uc.policy.MaxAttempts || session.RadiusKm > uc.policy.MaxRadiusKm {
			log.Warn("Search exhausted",
				zap.Int("attempts", session.Attempt),
				zap.Float64("radius_km", session.RadiusKm))
			return nil, &domain.SearchError{
				SessionID: session.ID,
				Kind:      domain.SearchExhausted,
				Attempts:  session.Attempt,
				RadiusKm:  session.RadiusKm,
			}
		}

		req := session.Request(query)
		resp, err := uc.query(ctx, req)
		if err != nil {
			kind := domain.SearchNetworkFailure
			if ctx.Err() != nil {
				kind = domain.SearchCancelled
			}
			log.Error("Places provider request failed",
				zap.Int("attempt", session.Attempt),
				zap.Float64("radius_km", session.RadiusKm),
				zap.Error(err))
			return nil, &domain.SearchError{
				SessionID: session.ID,
				Kind:      kind,
				Attempts:  session.Attempt + 1,
				RadiusKm:  session.RadiusKm,
				Err:       err,
			}
		}

		trace = append(trace, domain.AttemptTrace{
			Attempt:     session.Attempt,
			RadiusKm:    session.RadiusKm,
			Status:      resp.Status,
			ResultCount: len(resp.Results),
		})

		if !resp.Status.Retryable() {
			log.Error("Places provider returned fatal status",
				zap.String("status", string(resp.Status)),
				zap.Int("attempt", session.Attempt))
			return nil, &domain.SearchError{
				SessionID: session.ID,
				Kind:      domain.SearchProviderFatal,
				Status:    resp.Status,
				Attempts:  session.Attempt + 1,
				RadiusKm:  session.RadiusKm,
			}
		}

		if resp.Status == domain.StatusOK && len(resp.Results) >= uc.policy.MinResults {
			places := make([]domain.AnnotatedPlace, 0, uc.policy.MinResults)
			for _, place := range resp.Results[:uc.policy.MinResults] {
				places = append(places, domain.Annotate(origin, place))
			}

			log.Info("Search completed",
				zap.Int("attempts", session.Attempt+1),
				zap.Float64("radius_km", session.RadiusKm),
				zap.Int("provider_results", len(resp.Results)))

			return &domain.SearchOutcome{
				SessionID: session.ID,
				Origin:    origin,
				Query:     query,
				Places:    places,
				RadiusKm:  session.RadiusKm,
				Attempts:  session.Attempt + 1,
				Trace:     trace,
			}, nil
		}

		log.Debug("Not enough places, expanding radius",
			zap.Int("attempt", session.Attempt),
			zap.Float64("radius_km", session.RadiusKm),
			zap.String("status", string(resp.Status)),
			zap.Int("results", len(resp.Results)))

		session = session.Next(uc.policy.GrowthFactor)
	}
}

// SearchResult - терминальный элемент асинхронного поиска
type SearchResult struct {
	Outcome *domain.SearchOutcome
	Err     error
}

// SearchAsync запускает поиск в отдельной горутине. Канал отдает ровно один результат и закрывается.
func (uc *NearbySearchUseCase) SearchAsync(
	ctx context.Context,
	origin domain.Coordinate,
	query string,
) <-chan SearchResult {
	out := make(chan SearchResult, 1)

	go func() {
		defer close(out)
		outcome, err := uc.SearchQuery(ctx, origin, query)
		out <- SearchResult{Outcome: outcome, Err: err}
	}()

	return out
}

func (uc *NearbySearchUseCase) query(ctx context.Context, req domain.SearchRequest) (*domain.ProviderResponse, error) {
	if uc.policy.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.policy.AttemptTimeout)
		defer cancel()
	}

	resp, err := uc.provider.TextSearch(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("provider %s returned empty response", uc.provider.Name())
	}
	return resp, nil
}
