package usecase

import (
	"context"
	stderrors "errors"

	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
)

// Callbacks - EventSink на функциях. Незаданные обработчики пропускаются.
type Callbacks struct {
	OnResultsReady  func(places []domain.AnnotatedPlace, markers []domain.Marker, bounds domain.BoundingBox)
	OnSearchError   func(err *domain.EventError)
	OnPlaceSelected func(selection domain.Selection)
	OnLocationError func(err *domain.EventError)
}

// Publish вызывает обработчик, соответствующий типу события
func (c Callbacks) Publish(_ context.Context, event domain.SearchEvent) error {
	switch event.Type {
	case domain.EventResultsReady:
		if c.OnResultsReady != nil {
			var bounds domain.BoundingBox
			if event.Bounds != nil {
				bounds = *event.Bounds
			}
			c.OnResultsReady(event.Places, event.Markers, bounds)
		}
	case domain.EventSearchError:
		if c.OnSearchError != nil {
			c.OnSearchError(event.Error)
		}
	case domain.EventPlaceSelected:
		if c.OnPlaceSelected != nil && event.Selection != nil {
			c.OnPlaceSelected(*event.Selection)
		}
	case domain.EventLocationError:
		if c.OnLocationError != nil {
			c.OnLocationError(event.Error)
		}
	}
	return nil
}

// MultiSink рассылает событие во все sink'и по порядку
type MultiSink []repository.EventSink

// Publish публикует событие во все sink'и. Ошибка одного не останавливает остальные.
func (m MultiSink) Publish(ctx context.Context, event domain.SearchEvent) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
