package usecase

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/siting"
	"github.com/ev-siting/internal/usecase/dto"
)

// StationUseCase - выборка станций каталога по атрибутам и округу
type StationUseCase struct {
	catalog CatalogProvider
	logger  *zap.Logger
}

// NewStationUseCase создает новый экземпляр StationUseCase
func NewStationUseCase(catalog CatalogProvider, logger *zap.Logger) *StationUseCase {
	return &StationUseCase{
		catalog: catalog,
		logger:  logger,
	}
}

// List применяет фильтры по оператору и мощности, затем фильтр по округу.
// Результат отсортирован по id.
func (uc *StationUseCase) List(ctx context.Context, req dto.StationListRequest) (*dto.StationListResponse, error) {
	snapshot, err := uc.catalog.Snapshot()
	if err != nil {
		return nil, err
	}

	filter := siting.StationFilter{
		Operator: req.Operator,
		PowerMin: req.PowerMin,
		PowerMax: req.PowerMax,
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	district, err := siting.ResolveDistrict(snapshot.Districts, req.District)
	if err != nil {
		return nil, err
	}

	stations := siting.FilterByDistrict(filter.Apply(snapshot.Stations), district)
	stations = sortedByID(stations)

	uc.logger.Debug("Stations listed",
		zap.String("operator", req.Operator),
		zap.String("district", req.District),
		zap.Int("total", len(stations)))

	return &dto.StationListResponse{
		Stations: stations,
		Total:    len(stations),
	}, nil
}

// sortedByID возвращает отсортированную копию; snapshot не модифицируется
func sortedByID(stations []domain.Station) []domain.Station {
	out := make([]domain.Station, len(stations))
	copy(out, stations)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
