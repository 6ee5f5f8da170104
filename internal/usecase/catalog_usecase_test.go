package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/metrics"
	"github.com/ev-siting/internal/pkg/errors"
	"github.com/ev-siting/internal/usecase"
)

type catalogFixture struct {
	stations  *MockStationRepository
	districts *MockDistrictRepository
	cache     *MockCacheRepository
	metrics   *metrics.Collector
	uc        *usecase.CatalogUseCase
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	collector, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	f := &catalogFixture{
		stations:  &MockStationRepository{},
		districts: &MockDistrictRepository{},
		cache:     &MockCacheRepository{},
		metrics:   collector,
	}
	f.uc = usecase.NewCatalogUseCase(f.stations, f.districts, f.cache, collector, time.Hour, zap.NewNop())
	return f
}

func TestCatalogUseCase_SnapshotBeforeLoad(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.uc.Snapshot()
	assert.True(t, stderrors.Is(err, errors.ErrCatalogNotLoaded))

	_, err = f.uc.Districts()
	assert.True(t, stderrors.Is(err, errors.ErrCatalogNotLoaded))
}

func TestCatalogUseCase_Load(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	f.stations.On("GetAll", ctx).Return(catalogStations(), 4, nil)
	f.districts.On("GetAll", ctx).Return(districtRecords(), nil)

	resp, err := f.uc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Stations)
	assert.Equal(t, 2, resp.Districts)
	assert.Equal(t, 4, resp.Skipped)

	snapshot, err := f.uc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, resp.Version, snapshot.Version.String())
	assert.Equal(t, []string{"Mitte", "Pankow"}, snapshot.DistrictNames())

	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.CatalogStations))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.CatalogDistricts))

	// Первая загрузка не трогает кеш статистики
	f.cache.AssertNotCalled(t, "DeleteStats", mock.Anything, mock.Anything)
}

func TestCatalogUseCase_ReloadInvalidatesStats(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	f.stations.On("GetAll", ctx).Return(catalogStations(), 0, nil)
	f.districts.On("GetAll", ctx).Return(districtRecords(), nil)

	_, err := f.uc.Load(ctx)
	require.NoError(t, err)
	first, _ := f.uc.Snapshot()

	f.cache.On("DeleteStats", ctx, first.Version.String()).Return(nil)

	_, err = f.uc.Load(ctx)
	require.NoError(t, err)
	second, _ := f.uc.Snapshot()

	assert.NotEqual(t, first.Version, second.Version)
	// Старый snapshot остаётся целым для уже запущенных вычислений
	assert.Len(t, first.Stations, 3)
	f.cache.AssertExpectations(t)
}

func TestCatalogUseCase_LoadErrorsKeepSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("station repository failure", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.stations.On("GetAll", ctx).Return(nil, 0, stderrors.New("connection refused"))

		_, err := f.uc.Load(ctx)
		assert.True(t, stderrors.Is(err, errors.ErrDatabaseError))

		_, err = f.uc.Snapshot()
		assert.True(t, stderrors.Is(err, errors.ErrCatalogNotLoaded))
	})

	t.Run("invalid district geometry", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.stations.On("GetAll", ctx).Return(catalogStations(), 0, nil)
		f.districts.On("GetAll", ctx).Return([]domain.DistrictRecord{{Name: "Mitte", WKT: "POINT(13.4 52.5)"}}, nil)

		_, err := f.uc.Load(ctx)
		assert.True(t, stderrors.Is(err, errors.ErrInvalidInputData))
	})

	t.Run("negative station cost", func(t *testing.T) {
		f := newCatalogFixture(t)
		stations := catalogStations()
		stations[0].Cost = -1
		f.stations.On("GetAll", ctx).Return(stations, 0, nil)

		_, err := f.uc.Load(ctx)
		assert.True(t, stderrors.Is(err, errors.ErrInvalidInputData))
		f.districts.AssertNotCalled(t, "GetAll", mock.Anything)
	})
}

func TestCatalogUseCase_Stats(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	f.stations.On("GetAll", ctx).Return(catalogStations(), 1, nil)
	f.districts.On("GetAll", ctx).Return(districtRecords(), nil)
	_, err := f.uc.Load(ctx)
	require.NoError(t, err)
	snapshot, _ := f.uc.Snapshot()
	version := snapshot.Version.String()

	f.cache.On("GetStats", ctx, version).Return(nil, nil).Once()
	f.cache.On("SetStats", ctx, mock.AnythingOfType("*domain.Statistics"), time.Hour).Return(nil).Once()

	stats, err := f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, version, stats.CatalogVersion)
	assert.Equal(t, 3, stats.Stations)
	assert.Equal(t, 1, stats.SkippedRows)
	assert.Equal(t, 2, stats.Districts)
	assert.Equal(t, map[string]int{"Allego": 1, "Vattenfall": 2}, stats.ByOperator)
	assert.Equal(t, map[string]int{"Mitte": 2, "Pankow": 1}, stats.ByDistrict)
	assert.Equal(t, 11.0, stats.Power.Min)
	assert.Equal(t, 150.0, stats.Power.Max)
	assert.InDelta(t, 61.0, stats.Power.Avg, 1e-9)
	assert.Equal(t, 1, stats.Power.FastDC)

	// Повторный запрос отдаётся из кеша
	f.cache.On("GetStats", ctx, version).Return(stats, nil).Once()
	cached, err := f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.Same(t, stats, cached)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheRequests.WithLabelValues("stats", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheRequests.WithLabelValues("stats", "hit")))
	f.cache.AssertExpectations(t)
}

func TestCatalogUseCase_StatsCacheFailureIsNotFatal(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	f.stations.On("GetAll", ctx).Return(catalogStations(), 0, nil)
	f.districts.On("GetAll", ctx).Return(districtRecords(), nil)
	_, err := f.uc.Load(ctx)
	require.NoError(t, err)

	f.cache.On("GetStats", ctx, mock.Anything).Return(nil, stderrors.New("redis down"))
	f.cache.On("SetStats", ctx, mock.Anything, time.Hour).Return(stderrors.New("redis down"))

	stats, err := f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Stations)
}

func TestCatalogUseCase_Names(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	f.stations.On("GetAll", ctx).Return(catalogStations(), 0, nil)
	f.districts.On("GetAll", ctx).Return(districtRecords(), nil)
	_, err := f.uc.Load(ctx)
	require.NoError(t, err)

	districts, err := f.uc.Districts()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mitte", "Pankow"}, districts.Items)
	assert.Equal(t, 2, districts.Total)

	operators, err := f.uc.Operators()
	require.NoError(t, err)
	assert.Equal(t, []string{"Allego", "Vattenfall"}, operators.Items)
}
