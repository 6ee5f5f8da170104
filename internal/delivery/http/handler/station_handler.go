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

// StationHandler - обработчик запросов к каталогу станций
type StationHandler struct {
	stationUC *usecase.StationUseCase
	catalogUC *usecase.CatalogUseCase
	logger    *zap.Logger
}

// NewStationHandler - создание нового StationHandler
func NewStationHandler(stationUC *usecase.StationUseCase, catalogUC *usecase.CatalogUseCase, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		stationUC: stationUC,
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// ListStations godoc
// @Summary Список зарядных станций
// @Description Возвращает станции каталога с фильтрами по оператору, мощности и округу. Результат отсортирован по id.
// @Tags Stations
// @Produce json
// @Param operator query string false "Оператор (точное совпадение)"
// @Param power_min query number false "Минимальная мощность, кВт (включительно)"
// @Param power_max query number false "Максимальная мощность, кВт (включительно)"
// @Param district query string false "Округ или all"
// @Success 200 {object} utils.SuccessResponse{data=dto.StationListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/stations [get]
func (h *StationHandler) ListStations(c *fiber.Ctx) error {
	var req dto.StationListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.stationUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// ListDistricts godoc
// @Summary Список округов
// @Tags Stations
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.NamesResponse}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/districts [get]
func (h *StationHandler) ListDistricts(c *fiber.Ctx) error {
	result, err := h.catalogUC.Districts()
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// ListOperators godoc
// @Summary Список операторов
// @Tags Stations
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.NamesResponse}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/operators [get]
func (h *StationHandler) ListOperators(c *fiber.Ctx) error {
	result, err := h.catalogUC.Operators()
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}
