package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/domain/repository"
	"github.com/ev-siting/internal/metrics"
	"github.com/ev-siting/internal/pkg/errors"
	"github.com/ev-siting/internal/siting"
	"github.com/ev-siting/internal/usecase/dto"
)

// OptimizationUseCase запускает модель выбора станций на текущем snapshot
// синхронно или ставит задачу в Redis Stream для воркера.
type OptimizationUseCase struct {
	catalog    CatalogProvider
	optimizer  *siting.Optimizer
	streamRepo repository.StreamRepository
	defaults   domain.SelectionParams
	metrics    *metrics.Collector
	logger     *zap.Logger
}

// NewOptimizationUseCase создает новый экземпляр OptimizationUseCase.
// streamRepo может быть nil - тогда постановка задач недоступна.
func NewOptimizationUseCase(
	catalog CatalogProvider,
	optimizer *siting.Optimizer,
	streamRepo repository.StreamRepository,
	defaults domain.SelectionParams,
	collector *metrics.Collector,
	logger *zap.Logger,
) *OptimizationUseCase {
	return &OptimizationUseCase{
		catalog:    catalog,
		optimizer:  optimizer,
		streamRepo: streamRepo,
		defaults:   defaults,
		metrics:    collector,
		logger:     logger,
	}
}

// Params подставляет значения по умолчанию для отсутствующих полей запроса
func (uc *OptimizationUseCase) Params(req dto.OptimizeRequest) domain.SelectionParams {
	params := uc.defaults
	if req.MinStations != nil {
		params.MinStations = *req.MinStations
	}
	if req.MinCoverage != nil {
		params.MinCoverage = *req.MinCoverage
	}
	return params
}

// Optimize - синхронная оптимизация по запросу API
func (uc *OptimizationUseCase) Optimize(ctx context.Context, req dto.OptimizeRequest) (*dto.OptimizeResponse, error) {
	params := uc.Params(req)

	result, version, err := uc.Run(ctx, params)
	if err != nil {
		return nil, err
	}

	return &dto.OptimizeResponse{
		Result:         result,
		Params:         params,
		CatalogVersion: version,
	}, nil
}

// Run решает задачу на текущем snapshot и возвращает результат вместе
// с версией каталога, на которой он получен
func (uc *OptimizationUseCase) Run(ctx context.Context, params domain.SelectionParams) (*domain.SelectionResult, string, error) {
	snapshot, err := uc.catalog.Snapshot()
	if err != nil {
		return nil, "", err
	}
	version := snapshot.Version.String()

	start := time.Now()
	result, err := uc.optimizer.Optimize(ctx, snapshot.Stations, params)
	uc.metrics.ObserveOptimization(uc.optimizer.SolverName(), outcomeOf(result, err), time.Since(start))
	if err != nil {
		uc.logger.Warn("Optimization failed",
			zap.String("catalog_version", version),
			zap.Int("min_stations", params.MinStations),
			zap.Float64("min_coverage", params.MinCoverage),
			zap.Error(err))
		return nil, version, err
	}

	uc.logger.Info("Optimization finished",
		zap.String("catalog_version", version),
		zap.String("solver", result.Solver),
		zap.Bool("feasible", result.Feasible),
		zap.Bool("optimal", result.Optimal),
		zap.Int("selected", result.SelectedCount),
		zap.Float64("objective", result.ObjectiveValue),
		zap.Float64("duration_ms", result.DurationMS))

	return result, version, nil
}

// Enqueue публикует OptimizationRequestedEvent и возвращает id задачи
func (uc *OptimizationUseCase) Enqueue(ctx context.Context, req dto.OptimizeRequest) (*dto.JobResponse, error) {
	if uc.streamRepo == nil {
		return nil, errors.ErrSolverUnavailable.WithMessage("Optimization job queue is not configured")
	}

	params := uc.Params(req)
	event := domain.OptimizationRequestedEvent{
		RequestID:   uuid.New(),
		MinStations: params.MinStations,
		MinCoverage: params.MinCoverage,
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamOptimizationRequested, event); err != nil {
		uc.logger.Error("Failed to enqueue optimization job",
			zap.String("request_id", event.RequestID.String()),
			zap.Error(err))
		return nil, errors.ErrCacheError.WithMessage("Failed to enqueue optimization job")
	}

	uc.logger.Info("Optimization job enqueued", zap.String("request_id", event.RequestID.String()))

	return &dto.JobResponse{
		RequestID: event.RequestID,
		Stream:    domain.StreamOptimizationRequested,
		Params:    params,
	}, nil
}

func outcomeOf(result *domain.SelectionResult, err error) string {
	switch {
	case err != nil && stderrors.Is(err, errors.ErrSolverUnavailable):
		return metrics.OutcomeUnavailable
	case err != nil:
		return metrics.OutcomeInvalid
	case !result.Feasible:
		return metrics.OutcomeInfeasible
	case result.Optimal:
		return metrics.OutcomeOptimal
	default:
		return metrics.OutcomeFeasible
	}
}
