package usecase

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
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

// fastDCThresholdKW - с какой мощности станция считается быстрой (DC)
const fastDCThresholdKW = 50

// CatalogProvider отдаёт текущий snapshot каталога
type CatalogProvider interface {
	Snapshot() (*domain.CatalogSnapshot, error)
}

// CatalogUseCase держит неизменяемый snapshot станций и округов.
// Чтение без блокировок, перезагрузка подменяет указатель целиком.
type CatalogUseCase struct {
	stationRepo  repository.StationRepository
	districtRepo repository.DistrictRepository
	cacheRepo    repository.CacheRepository
	metrics      *metrics.Collector
	statsTTL     time.Duration
	logger       *zap.Logger

	current atomic.Pointer[domain.CatalogSnapshot]
	loadMu  sync.Mutex
}

// NewCatalogUseCase создает новый экземпляр CatalogUseCase
func NewCatalogUseCase(
	stationRepo repository.StationRepository,
	districtRepo repository.DistrictRepository,
	cacheRepo repository.CacheRepository,
	collector *metrics.Collector,
	statsTTL time.Duration,
	logger *zap.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		stationRepo:  stationRepo,
		districtRepo: districtRepo,
		cacheRepo:    cacheRepo,
		metrics:      collector,
		statsTTL:     statsTTL,
		logger:       logger,
	}
}

// Load читает реестр и округа, строит новый snapshot и делает его текущим.
// При ошибке текущий snapshot не меняется.
func (uc *CatalogUseCase) Load(ctx context.Context) (*dto.CatalogResponse, error) {
	uc.loadMu.Lock()
	defer uc.loadMu.Unlock()

	stations, skipped, err := uc.stationRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to load stations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if err := siting.ValidateStations(stations); err != nil {
		return nil, err
	}

	records, err := uc.districtRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to load districts", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	districts, err := siting.BuildDistricts(records)
	if err != nil {
		uc.logger.Error("Failed to build district boundaries", zap.Error(err))
		return nil, errors.ErrInvalidInputData.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	snapshot := &domain.CatalogSnapshot{
		Version:   uuid.New(),
		LoadedAt:  time.Now().UTC(),
		Stations:  stations,
		Districts: districts,
		Skipped:   skipped,
	}
	previous := uc.current.Swap(snapshot)

	uc.metrics.SetCatalog(len(stations), len(districts))

	if previous != nil {
		if err := uc.cacheRepo.DeleteStats(ctx, previous.Version.String()); err != nil {
			uc.logger.Warn("Failed to invalidate cached stats", zap.Error(err))
		}
	}

	uc.logger.Info("Catalog loaded",
		zap.String("version", snapshot.Version.String()),
		zap.Int("stations", len(stations)),
		zap.Int("districts", len(districts)),
		zap.Int("skipped", skipped))

	return &dto.CatalogResponse{
		Version:   snapshot.Version.String(),
		Stations:  len(stations),
		Districts: len(districts),
		Skipped:   skipped,
		LoadedAt:  snapshot.LoadedAt,
	}, nil
}

// Snapshot возвращает текущий snapshot или CATALOG_NOT_LOADED
func (uc *CatalogUseCase) Snapshot() (*domain.CatalogSnapshot, error) {
	snapshot := uc.current.Load()
	if snapshot == nil {
		return nil, errors.ErrCatalogNotLoaded
	}
	return snapshot, nil
}

// Districts - имена округов в алфавитном порядке
func (uc *CatalogUseCase) Districts() (*dto.NamesResponse, error) {
	snapshot, err := uc.Snapshot()
	if err != nil {
		return nil, err
	}
	names := snapshot.DistrictNames()
	return &dto.NamesResponse{Items: names, Total: len(names)}, nil
}

// Operators - уникальные операторы в алфавитном порядке
func (uc *CatalogUseCase) Operators() (*dto.NamesResponse, error) {
	snapshot, err := uc.Snapshot()
	if err != nil {
		return nil, err
	}
	ops := snapshot.Operators()
	return &dto.NamesResponse{Items: ops, Total: len(ops)}, nil
}

// Stats возвращает статистику текущего snapshot, используя кеш когда возможно
func (uc *CatalogUseCase) Stats(ctx context.Context) (*domain.Statistics, error) {
	snapshot, err := uc.Snapshot()
	if err != nil {
		return nil, err
	}
	version := snapshot.Version.String()

	cached, err := uc.cacheRepo.GetStats(ctx, version)
	if err != nil {
		uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
	}
	if cached != nil {
		uc.metrics.CacheHit("stats")
		return cached, nil
	}
	uc.metrics.CacheMiss("stats")

	stats := computeStats(snapshot)

	if err := uc.cacheRepo.SetStats(ctx, stats, uc.statsTTL); err != nil {
		// Не возвращаем ошибку, т.к. данные уже посчитаны
		uc.logger.Warn("Failed to cache stats", zap.Error(err))
	}

	return stats, nil
}

func computeStats(snapshot *domain.CatalogSnapshot) *domain.Statistics {
	stats := &domain.Statistics{
		CatalogVersion: snapshot.Version.String(),
		Stations:       len(snapshot.Stations),
		SkippedRows:    snapshot.Skipped,
		Districts:      len(snapshot.Districts),
		ByOperator:     make(map[string]int),
		ByDistrict:     make(map[string]int, len(snapshot.Districts)),
		LastUpdated:    snapshot.LoadedAt,
	}

	minPower, maxPower, sum := math.Inf(1), 0.0, 0.0
	for _, st := range snapshot.Stations {
		stats.ByOperator[st.Operator]++
		sum += st.PowerKW
		minPower = math.Min(minPower, st.PowerKW)
		maxPower = math.Max(maxPower, st.PowerKW)
		if st.PowerKW >= fastDCThresholdKW {
			stats.Power.FastDC++
		}
	}
	if n := len(snapshot.Stations); n > 0 {
		stats.Power.Min = minPower
		stats.Power.Max = maxPower
		stats.Power.Avg = sum / float64(n)
	}

	for name, d := range snapshot.Districts {
		stats.ByDistrict[name] = len(siting.FilterByDistrict(snapshot.Stations, d))
	}

	return stats
}
