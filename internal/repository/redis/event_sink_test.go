package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nearby-places/internal/domain"
)

type mockStreamRepository struct {
	mock.Mock
}

func (m *mockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *mockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	return m.Called(ctx, stream, group, messageIDs).Error(0)
}

func (m *mockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *mockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

func TestStreamEventSink_DefaultStream(t *testing.T) {
	streams := &mockStreamRepository{}
	event := domain.SearchEvent{Type: domain.EventResultsReady, SessionID: uuid.New()}
	streams.On("PublishToStream", mock.Anything, domain.StreamNearbyEvents, event).Return(nil).Once()

	sink := NewStreamEventSink(streams, "")

	assert.NoError(t, sink.Publish(context.Background(), event))
	streams.AssertExpectations(t)
}

func TestStreamEventSink_Error(t *testing.T) {
	streams := &mockStreamRepository{}
	streams.On("PublishToStream", mock.Anything, "custom", mock.Anything).Return(errors.New("redis down")).Once()

	sink := NewStreamEventSink(streams, "custom")

	err := sink.Publish(context.Background(), domain.SearchEvent{Type: domain.EventSearchError})
	assert.ErrorContains(t, err, "redis down")
}
