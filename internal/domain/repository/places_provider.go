package repository

import (
	"context"

	"github.com/nearby-places/internal/domain"
)

// PlacesProvider определяет внешний сервис поиска мест
type PlacesProvider interface {
	// TextSearch выполняет один запрос поиска мест в радиусе от точки.
	// Ошибка возвращается только при сбое транспорта; статусы провайдера передаются в ответе.
	TextSearch(ctx context.Context, req domain.SearchRequest) (*domain.ProviderResponse, error)

	// Name возвращает имя провайдера для логов и ключей кеша
	Name() string
}
