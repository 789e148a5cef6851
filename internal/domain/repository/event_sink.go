package repository

import (
	"context"

	"github.com/nearby-places/internal/domain"
)

// EventSink принимает события сессии поиска
type EventSink interface {
	Publish(ctx context.Context, event domain.SearchEvent) error
}
