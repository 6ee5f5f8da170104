package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/pkg/utils"
	"github.com/ev-siting/internal/usecase"
)

// CatalogHandler - перезагрузка каталога и статистика
type CatalogHandler struct {
	catalogUC *usecase.CatalogUseCase
	logger    *zap.Logger
}

// NewCatalogHandler создает новый экземпляр CatalogHandler
func NewCatalogHandler(catalogUC *usecase.CatalogUseCase, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// Reload godoc
// @Summary Перезагрузить каталог
// @Description Читает реестр станций и границы округов из базы и атомарно подменяет snapshot
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CatalogResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/catalog/reload [post]
func (h *CatalogHandler) Reload(c *fiber.Ctx) error {
	result, err := h.catalogUC.Load(c.Context())
	if err != nil {
		h.logger.Error("Failed to reload catalog", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		CatalogVersion: result.Version,
	})
}

// GetStatistics godoc
// @Summary Статистика каталога
// @Description Количество станций, операторы, распределение мощности и станции по округам
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Statistics}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/stats [get]
func (h *CatalogHandler) GetStatistics(c *fiber.Ctx) error {
	h.logger.Debug("Handling get statistics request")

	stats, err := h.catalogUC.Stats(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, &utils.Meta{
		CatalogVersion: stats.CatalogVersion,
	})
}
