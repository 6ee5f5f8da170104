package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/pkg/errors"
	"github.com/ev-siting/internal/pkg/utils"
	"github.com/ev-siting/internal/pkg/validator"
	"github.com/ev-siting/internal/usecase"
	"github.com/ev-siting/internal/usecase/dto"
)

// ProximityHandler - станции рядом с узлами дорожной сети
type ProximityHandler struct {
	proximityUC *usecase.ProximityUseCase
	logger      *zap.Logger
}

func NewProximityHandler(proximityUC *usecase.ProximityUseCase, logger *zap.Logger) *ProximityHandler {
	return &ProximityHandler{
		proximityUC: proximityUC,
		logger:      logger,
	}
}

// Near godoc
// @Summary Станции рядом с дорожной сетью
// @Description Возвращает станции, попадающие в объединение буферов радиуса threshold_m вокруг узлов дорожной сети
// @Tags Proximity
// @Accept json
// @Produce json
// @Param request body dto.ProximityRequest false "Порог, метрика и округ"
// @Success 200 {object} utils.SuccessResponse{data=dto.ProximityResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/proximity [post]
func (h *ProximityHandler) Near(c *fiber.Ctx) error {
	var req dto.ProximityRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
		}
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.proximityUC.Near(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Count,
	})
}
