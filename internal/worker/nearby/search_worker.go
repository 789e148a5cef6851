package nearby

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/domain"
	"github.com/nearby-places/internal/domain/repository"
	"github.com/nearby-places/internal/usecase/dto"
	"github.com/nearby-places/internal/worker"
)

// SessionRunner выполняет одну сессию поиска; сбой сети провайдера повторяется до retries раз
type SessionRunner interface {
	RunWithRetries(ctx context.Context, req dto.NearbySearchRequest, retries int) (*dto.NearbySearchResponse, error)
}

// SearchWorker читает запросы из stream:nearby:search и запускает по ним сессии поиска.
// Результаты и ошибки уходят подписчикам через EventSink сессии.
type SearchWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	session      SessionRunner
	consumerName string
	batchSize    int
	maxRetries   int
}

// NewSearchWorker создает новый SearchWorker
func NewSearchWorker(
	streamRepo repository.StreamRepository,
	session SessionRunner,
	consumerGroup string,
	batchSize int,
	maxRetries int,
	logger *zap.Logger,
) *SearchWorker {
	hostname, _ := os.Hostname()
	if batchSize < 1 {
		batchSize = 1
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &SearchWorker{
		BaseWorker:   worker.NewBaseWorker("nearby-search", consumerGroup, logger),
		streamRepo:   streamRepo,
		session:      session,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		batchSize:    batchSize,
		maxRetries:   maxRetries,
	}
}

// Start создает consumer group и обрабатывает пачки до остановки
func (w *SearchWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting nearby search worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamNearbySearch, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	return w.Loop(ctx, w.ProcessBatch)
}

// ProcessBatch читает пачку сообщений, выполняет поиск по каждому и подтверждает их.
// Битые сообщения тоже подтверждаются, чтобы не застревали в pending.
func (w *SearchWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamNearbySearch,
		w.ConsumerGroup(),
		w.consumerName,
		w.batchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	ackIDs := make([]string, 0, len(messages))
	succeeded := 0

	for _, msg := range messages {
		if ctx.Err() != nil {
			break
		}

		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		if w.handle(ctx, msg.ID, event) {
			succeeded++
		}
		ackIDs = append(ackIDs, msg.ID)
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamNearbySearch, w.ConsumerGroup(), ackIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Info("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("acked", len(ackIDs)),
		zap.Int("succeeded", succeeded))

	return len(messages), nil
}

// handle запускает сессию. Повторы сбоя сети выполняет сама сессия,
// поэтому подписчики получают одно событие на запрос.
func (w *SearchWorker) handle(ctx context.Context, messageID string, event *domain.NearbySearchRequestedEvent) bool {
	resp, err := w.session.RunWithRetries(ctx, requestFromEvent(event), w.maxRetries)
	if err != nil {
		w.Logger().Info("Search failed",
			zap.String("message_id", messageID),
			zap.String("request_id", event.RequestID.String()),
			zap.Bool("network_failure", domain.IsSearchErrorKind(err, domain.SearchNetworkFailure)),
			zap.Error(err))
		return false
	}

	w.Logger().Debug("Search completed",
		zap.String("message_id", messageID),
		zap.String("session_id", resp.SessionID.String()),
		zap.Int("places", resp.Total))
	return true
}

func parseMessage(msg domain.StreamMessage) (*domain.NearbySearchRequestedEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("message %s has no data", msg.ID)
	}

	var event domain.NearbySearchRequestedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}

func requestFromEvent(event *domain.NearbySearchRequestedEvent) dto.NearbySearchRequest {
	req := dto.NearbySearchRequest{
		Lat:      event.Lat,
		Lng:      event.Lng,
		Query:    event.Query,
		ClientIP: event.ClientIP,
	}
	if event.RequestID != uuid.Nil {
		id := event.RequestID
		req.RequestID = &id
	}
	return req
}
