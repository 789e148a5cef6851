package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// IdleDelay - пауза, если в стриме нет новых сообщений
	IdleDelay = 100 * time.Millisecond
	// ErrorDelay - пауза после ошибки чтения
	ErrorDelay = time.Second
)

// StepFunc обрабатывает одну пачку сообщений и возвращает их количество
type StepFunc func(ctx context.Context) (int, error)

// BaseWorker содержит общую логику воркеров: остановку и цикл опроса
type BaseWorker struct {
	name          string
	consumerGroup string
	logger        *zap.Logger

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewBaseWorker создает новый BaseWorker
func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		consumerGroup: consumerGroup,
		logger:        logger.With(zap.String("worker", name)),
		stopChan:      make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

// Stop закрывает канал остановки
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.logger.Info("Stopping worker")
	close(w.stopChan)
	w.stopped = true

	return nil
}

// IsStopped проверяет, остановлен ли воркер
func (w *BaseWorker) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// StopChan возвращает канал остановки
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// ConsumerGroup возвращает имя consumer group
func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

// Logger возвращает логгер с именем воркера
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// Loop вызывает step, пока воркер не остановлен и ctx не отменен.
// После пустой пачки ждет IdleDelay, после ошибки ErrorDelay.
func (w *BaseWorker) Loop(ctx context.Context, step StepFunc) error {
	for {
		select {
		case <-w.stopChan:
			w.logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			w.logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := step(ctx)

		var delay time.Duration
		switch {
		case err != nil:
			w.logger.Error("Failed to process batch", zap.Error(err))
			delay = ErrorDelay
		case processed == 0:
			delay = IdleDelay
		}

		if delay > 0 {
			w.wait(ctx, delay)
		}
	}
}

// wait ждет d, остановки воркера или отмены ctx
func (w *BaseWorker) wait(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-w.stopChan:
	case <-ctx.Done():
	}
}
