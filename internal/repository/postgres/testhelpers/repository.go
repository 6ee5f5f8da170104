package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/domain/repository"
	"github.com/ev-siting/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewStationRepositoryForTest creates a station repository with default cost/coverage 10000/1
func NewStationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.StationRepository {
	return postgres.NewStationRepository(NewDBForTest(db, logger), postgres.StationDefaults{
		Cost:     10000,
		Coverage: 1,
	})
}

// NewDistrictRepositoryForTest creates a district repository with test database and logger
func NewDistrictRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.DistrictRepository {
	return postgres.NewDistrictRepository(NewDBForTest(db, logger))
}
