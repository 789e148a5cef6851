package redis

import (
	"context"

	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
)

type streamEventSink struct {
	streams repository.StreamRepository
	stream  string
}

// NewStreamEventSink публикует события сессии поиска в стрим
func NewStreamEventSink(streams repository.StreamRepository, stream string) repository.EventSink {
	if stream == "" {
		stream = domain.StreamNearbyEvents
	}
	return &streamEventSink{
		streams: streams,
		stream:  stream,
	}
}

func (s *streamEventSink) Publish(ctx context.Context, event domain.SearchEvent) error {
	return s.streams.PublishToStream(ctx, s.stream, event)
}
