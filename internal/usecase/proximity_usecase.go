package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ev-siting/internal/config"
	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/domain/repository"
	"github.com/ev-siting/internal/geometry"
	"github.com/ev-siting/internal/metrics"
	"github.com/ev-siting/internal/pkg/errors"
	"github.com/ev-siting/internal/siting"
	"github.com/ev-siting/internal/usecase/dto"
)

const nodesCacheName = "traffic_nodes"

// ProximityUseCase находит станции рядом с узлами дорожной сети.
// Узлы читаются из OSM базы и кешируются в Redis.
type ProximityUseCase struct {
	catalog   CatalogProvider
	nodeRepo  repository.TrafficNodeRepository
	cacheRepo repository.CacheRepository
	cfg       config.ProximityConfig
	nodesTTL  time.Duration
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// NewProximityUseCase создает новый экземпляр ProximityUseCase
func NewProximityUseCase(
	catalog CatalogProvider,
	nodeRepo repository.TrafficNodeRepository,
	cacheRepo repository.CacheRepository,
	cfg config.ProximityConfig,
	nodesTTL time.Duration,
	collector *metrics.Collector,
	logger *zap.Logger,
) *ProximityUseCase {
	return &ProximityUseCase{
		catalog:   catalog,
		nodeRepo:  nodeRepo,
		cacheRepo: cacheRepo,
		cfg:       cfg,
		nodesTTL:  nodesTTL,
		metrics:   collector,
		logger:    logger,
	}
}

// Near возвращает станции каталога (опционально одного округа) в пределах
// порога от любого узла. Результат отсортирован по id.
func (uc *ProximityUseCase) Near(ctx context.Context, req dto.ProximityRequest) (*dto.ProximityResponse, error) {
	snapshot, err := uc.catalog.Snapshot()
	if err != nil {
		return nil, err
	}

	threshold := uc.cfg.ThresholdM
	if req.ThresholdM != nil {
		threshold = *req.ThresholdM
	}
	metricName := uc.cfg.Metric
	if req.Metric != "" {
		metricName = req.Metric
	}
	metric, err := geometry.NewMetric(metricName, uc.cfg.DegreesPerMeter)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"metric": metricName,
			"reason": err.Error(),
		})
	}

	district, err := siting.ResolveDistrict(snapshot.Districts, req.District)
	if err != nil {
		return nil, err
	}
	stations := siting.FilterByDistrict(snapshot.Stations, district)

	nodes, err := uc.trafficNodes(ctx)
	if err != nil {
		return nil, err
	}

	result, err := siting.NewProximityAnalyzer(metric).Near(nodes, stations, threshold)
	if err != nil {
		return nil, err
	}
	uc.metrics.SetProximityMatches(result.Count)

	uc.logger.Debug("Proximity analysis finished",
		zap.String("metric", result.Metric),
		zap.Float64("threshold_m", threshold),
		zap.Int("nodes", len(nodes)),
		zap.Int("matches", result.Count))

	return &dto.ProximityResponse{
		Stations:   sortedByID(result.Stations),
		Count:      result.Count,
		Metric:     result.Metric,
		ThresholdM: threshold,
		Nodes:      len(nodes),
	}, nil
}

// trafficNodes - узлы из кеша, при промахе из OSM базы
func (uc *ProximityUseCase) trafficNodes(ctx context.Context) ([]domain.TrafficNode, error) {
	key := uc.nodesCacheKey()

	cached, err := uc.cacheRepo.GetTrafficNodes(ctx, key)
	if err != nil {
		uc.logger.Warn("Failed to get traffic nodes from cache", zap.Error(err))
	}
	if cached != nil {
		uc.metrics.CacheHit(nodesCacheName)
		return cached, nil
	}
	uc.metrics.CacheMiss(nodesCacheName)

	bbox := domain.BoundingBox{
		MinLon: uc.cfg.BBox[0],
		MinLat: uc.cfg.BBox[1],
		MaxLon: uc.cfg.BBox[2],
		MaxLat: uc.cfg.BBox[3],
	}
	nodes, err := uc.nodeRepo.GetRoadJunctions(ctx, bbox, uc.cfg.HighwayTypes)
	if err != nil {
		uc.logger.Error("Failed to load traffic nodes", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	// пустой ответ (например, OSM база ещё импортируется) не кэшируем
	if len(nodes) == 0 {
		uc.logger.Warn("No traffic nodes found in bbox", zap.String("key", key))
		return nodes, nil
	}

	if err := uc.cacheRepo.SetTrafficNodes(ctx, key, nodes, uc.nodesTTL); err != nil {
		uc.logger.Warn("Failed to cache traffic nodes", zap.Error(err))
	}

	return nodes, nil
}

func (uc *ProximityUseCase) nodesCacheKey() string {
	b := uc.cfg.BBox
	return fmt.Sprintf("%.4f,%.4f,%.4f,%.4f:%s", b[0], b[1], b[2], b[3], strings.Join(uc.cfg.HighwayTypes, ","))
}
