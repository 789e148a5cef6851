package worker

import (
	"context"
)

// Worker - фоновый обработчик, который читает задачи из стрима
type Worker interface {
	// Start блокирует до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру о завершении. Повторный вызов безопасен.
	Stop() error

	Name() string
}
