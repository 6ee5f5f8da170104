package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/pkg/errors"
	"github.com/ev-siting/internal/pkg/utils"
	"github.com/ev-siting/internal/pkg/validator"
	"github.com/ev-siting/internal/usecase"
	"github.com/ev-siting/internal/usecase/dto"
)

// OptimizationHandler - выбор станций минимальной стоимости
type OptimizationHandler struct {
	optimizationUC *usecase.OptimizationUseCase
	logger         *zap.Logger
}

// NewOptimizationHandler - создание нового OptimizationHandler
func NewOptimizationHandler(optimizationUC *usecase.OptimizationUseCase, logger *zap.Logger) *OptimizationHandler {
	return &OptimizationHandler{
		optimizationUC: optimizationUC,
		logger:         logger,
	}
}

// Optimize godoc
// @Summary Оптимизация размещения станций
// @Description Выбирает подмножество станций минимальной суммарной стоимости при ограничениях на минимальное число станций и минимальное покрытие. Недопустимые ограничения возвращают feasible=false со статусом 200.
// @Tags Optimization
// @Accept json
// @Produce json
// @Param request body dto.OptimizeRequest false "Параметры модели; пустое тело - значения по умолчанию"
// @Success 200 {object} utils.SuccessResponse{data=dto.OptimizeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/optimize [post]
func (h *OptimizationHandler) Optimize(c *fiber.Ctx) error {
	req, err := parseOptimizeRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	result, err := h.optimizationUC.Optimize(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:          result.Result.SelectedCount,
		CatalogVersion: result.CatalogVersion,
		TimeMSec:       float64(time.Since(start).Microseconds()) / 1000,
	})
}

// EnqueueJob godoc
// @Summary Поставить задачу оптимизации в очередь
// @Description Публикует задачу в Redis Stream; результат воркер публикует в stream:siting:optimized
// @Tags Optimization
// @Accept json
// @Produce json
// @Param request body dto.OptimizeRequest false "Параметры модели"
// @Success 202 {object} utils.SuccessResponse{data=dto.JobResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/optimize/jobs [post]
func (h *OptimizationHandler) EnqueueJob(c *fiber.Ctx) error {
	req, err := parseOptimizeRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.optimizationUC.Enqueue(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, result, nil)
}

func parseOptimizeRequest(c *fiber.Ctx) (dto.OptimizeRequest, error) {
	var req dto.OptimizeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return req, errors.ErrInvalidRequest.WithMessage("Invalid request body")
		}
	}
	if err := validator.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
