package optimization

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/domain/repository"
	"github.com/ev-siting/internal/pkg/errors"
	"github.com/ev-siting/internal/worker"
)

const (
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second
)

// Runner - запуск оптимизации на текущем каталоге
type Runner interface {
	Run(ctx context.Context, params domain.SelectionParams) (*domain.SelectionResult, string, error)
}

// OptimizationWorker обрабатывает задачи из stream:siting:optimize и
// публикует результаты в stream:siting:optimized. Каждое сообщение
// подтверждается после публикации результата, в том числе при ошибке.
type OptimizationWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	runner     Runner
	batchSize  int
}

// NewOptimizationWorker создает новый OptimizationWorker
func NewOptimizationWorker(
	streamRepo repository.StreamRepository,
	runner Runner,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *OptimizationWorker {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &OptimizationWorker{
		BaseWorker: worker.NewBaseWorker("site-optimization", consumerGroup, logger),
		streamRepo: streamRepo,
		runner:     runner,
		batchSize:  batchSize,
	}
}

// Start запускает воркер
func (w *OptimizationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting OptimizationWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamOptimizationRequested, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.ProcessBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.Pause(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.Pause(ctx, emptyQueueSleep)
			}
		}
	}
}

// ProcessBatch читает и обрабатывает batch задач.
// Возвращает количество прочитанных сообщений.
func (w *OptimizationWorker) ProcessBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamOptimizationRequested,
		w.ConsumerGroup(),
		w.ConsumerName(),
		w.batchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	for _, msg := range messages {
		w.handle(ctx, msg)
	}

	return len(messages), nil
}

func (w *OptimizationWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	event, err := parseMessage(msg)
	var done *domain.OptimizationDoneEvent
	if err != nil {
		logger.Warn("Malformed optimization request", zap.Error(err))
		done = &domain.OptimizationDoneEvent{
			RequestID: event.RequestID,
			Error:     err.Error(),
			ErrorCode: errors.CodeInvalidRequest,
		}
	} else {
		done = w.run(ctx, event)
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamOptimizationDone, done); err != nil {
		// Без ACK сообщение останется в pending и будет видно через XPENDING
		logger.Error("Failed to publish optimization result",
			zap.String("request_id", done.RequestID.String()),
			zap.Error(err))
		return
	}

	if err := w.streamRepo.AckMessage(ctx, domain.StreamOptimizationRequested, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Error("Failed to ack message", zap.Error(err))
	}
}

func (w *OptimizationWorker) run(ctx context.Context, event domain.OptimizationRequestedEvent) *domain.OptimizationDoneEvent {
	done := &domain.OptimizationDoneEvent{RequestID: event.RequestID}

	result, version, err := w.runner.Run(ctx, event.Params())
	done.CatalogVersion = version
	if err != nil {
		done.Error = err.Error()
		done.ErrorCode = errors.CodeInternalServer
		if appErr, ok := errors.As(err); ok {
			done.ErrorCode = appErr.Code
			done.Error = appErr.Message
		}
		w.Logger().Warn("Optimization job failed",
			zap.String("request_id", event.RequestID.String()),
			zap.String("error_code", done.ErrorCode))
		return done
	}

	done.Result = result
	w.Logger().Info("Optimization job done",
		zap.String("request_id", event.RequestID.String()),
		zap.Bool("feasible", result.Feasible),
		zap.Int("selected", result.SelectedCount))
	return done
}

// parseMessage возвращает событие даже при ошибке, чтобы ответ
// по возможности содержал request_id
func parseMessage(msg domain.StreamMessage) (domain.OptimizationRequestedEvent, error) {
	var event domain.OptimizationRequestedEvent
	if msg.Data == "" {
		return event, fmt.Errorf("message has no data")
	}
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return domain.OptimizationRequestedEvent{}, fmt.Errorf("invalid event json: %w", err)
	}
	if event.RequestID == uuid.Nil {
		return event, fmt.Errorf("request_id is required")
	}
	return event, nil
}
