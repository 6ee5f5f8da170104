package worker

import (
	"context"
)

// Worker - фоновый обработчик, читающий задачи из Redis Stream
type Worker interface {
	// Start блокируется до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру завершиться после текущей задачи
	Stop() error

	// Name возвращает имя воркера
	Name() string
}
