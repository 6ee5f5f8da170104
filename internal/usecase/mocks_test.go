package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/pkg/errors"
	"github.com/ev-siting/internal/siting"
)

// MockStationRepository - мок для StationRepository
type MockStationRepository struct {
	mock.Mock
}

func (m *MockStationRepository) GetAll(ctx context.Context) ([]domain.Station, int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Station), args.Int(1), args.Error(2)
}

func (m *MockStationRepository) ReplaceAll(ctx context.Context, stations []domain.Station) error {
	args := m.Called(ctx, stations)
	return args.Error(0)
}

func (m *MockStationRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockDistrictRepository - мок для DistrictRepository
type MockDistrictRepository struct {
	mock.Mock
}

func (m *MockDistrictRepository) GetAll(ctx context.Context) ([]domain.DistrictRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DistrictRecord), args.Error(1)
}

func (m *MockDistrictRepository) ReplaceAll(ctx context.Context, records []domain.DistrictRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// MockCacheRepository - мок для CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStats(ctx context.Context, version string) (*domain.Statistics, error) {
	args := m.Called(ctx, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteStats(ctx context.Context, version string) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockCacheRepository) GetTrafficNodes(ctx context.Context, key string) ([]domain.TrafficNode, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrafficNode), args.Error(1)
}

func (m *MockCacheRepository) SetTrafficNodes(ctx context.Context, key string, nodes []domain.TrafficNode, ttl time.Duration) error {
	args := m.Called(ctx, key, nodes, ttl)
	return args.Error(0)
}

// MockTrafficNodeRepository - мок для TrafficNodeRepository
type MockTrafficNodeRepository struct {
	mock.Mock
}

func (m *MockTrafficNodeRepository) GetRoadJunctions(ctx context.Context, bbox domain.BoundingBox, highwayTypes []string) ([]domain.TrafficNode, error) {
	args := m.Called(ctx, bbox, highwayTypes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrafficNode), args.Error(1)
}

// MockStreamRepository - мок для StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// staticCatalog - CatalogProvider с заранее собранным snapshot
type staticCatalog struct {
	snapshot *domain.CatalogSnapshot
}

func (c staticCatalog) Snapshot() (*domain.CatalogSnapshot, error) {
	if c.snapshot == nil {
		return nil, errors.ErrCatalogNotLoaded
	}
	return c.snapshot, nil
}

const (
	mitteWKT  = "POLYGON((13.30 52.50, 13.40 52.50, 13.40 52.60, 13.30 52.60, 13.30 52.50))"
	pankowWKT = "POLYGON((13.45 52.40, 13.55 52.40, 13.55 52.50, 13.45 52.50, 13.45 52.40))"
)

func districtRecords() []domain.DistrictRecord {
	return []domain.DistrictRecord{
		{Name: "Mitte", WKT: mitteWKT},
		{Name: "Pankow", WKT: pankowWKT},
	}
}

// catalogStations - три станции: две в Mitte, одна в Pankow
func catalogStations() []domain.Station {
	return []domain.Station{
		{ID: 3, Operator: "Vattenfall", Lat: 52.45, Lon: 13.50, PowerKW: 150, Cost: 10000, CoverageWeight: 1},
		{ID: 1, Operator: "Allego", Lat: 52.55, Lon: 13.35, PowerKW: 22, Cost: 10000, CoverageWeight: 1},
		{ID: 2, Operator: "Vattenfall", Lat: 52.52, Lon: 13.38, PowerKW: 11, Cost: 10000, CoverageWeight: 1},
	}
}

func buildSnapshot(stations []domain.Station) *domain.CatalogSnapshot {
	districts, err := siting.BuildDistricts(districtRecords())
	if err != nil {
		panic(err)
	}
	return &domain.CatalogSnapshot{
		Version:   uuid.New(),
		LoadedAt:  time.Now().UTC(),
		Stations:  stations,
		Districts: districts,
	}
}
