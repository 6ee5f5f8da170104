package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/domain/repository"
	"github.com/ev-siting/internal/pkg/utils"
)

// StationDefaults - значения для NULL cost / coverage_weight
type StationDefaults struct {
	Cost     float64
	Coverage float64
}

type stationRepository struct {
	db       *DB
	defaults StationDefaults
	logger   *zap.Logger
}

// NewStationRepository создает репозиторий реестра станций
func NewStationRepository(db *DB, defaults StationDefaults) repository.StationRepository {
	return &stationRepository{
		db:       db,
		defaults: defaults,
		logger:   db.logger,
	}
}

// stationRow - строка charging_stations; координаты и стоимость могут быть NULL
type stationRow struct {
	ID             int64           `db:"id"`
	Operator       string          `db:"operator"`
	Street         string          `db:"street"`
	HouseNumber    string          `db:"house_number"`
	PostalCode     string          `db:"postal_code"`
	City           string          `db:"city"`
	Lat            sql.NullFloat64 `db:"lat"`
	Lon            sql.NullFloat64 `db:"lon"`
	PowerKW        float64         `db:"power_kw"`
	ChargePoints   int             `db:"charge_points"`
	Cost           sql.NullFloat64 `db:"cost"`
	CoverageWeight sql.NullFloat64 `db:"coverage_weight"`
	CommissionedAt sql.NullTime    `db:"commissioned_at"`
}

// GetAll возвращает станции с валидными координатами. Строки с NULL
// или вне допустимого диапазона отбрасываются и учитываются в skipped.
func (r *stationRepository) GetAll(ctx context.Context) ([]domain.Station, int, error) {
	query := fmt.Sprintf(`
		SELECT
			id, operator, street, house_number, postal_code, city,
			lat, lon, power_kw, charge_points, cost, coverage_weight, commissioned_at
		FROM %s
		ORDER BY id
	`, stationsTable)

	var rows []stationRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("failed to load stations", zap.Error(err))
		return nil, 0, fmt.Errorf("select stations: %w", err)
	}

	stations := make([]domain.Station, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if !row.Lat.Valid || !row.Lon.Valid || !utils.ValidateCoordinates(row.Lat.Float64, row.Lon.Float64) {
			skipped++
			continue
		}
		stations = append(stations, r.toDomain(row))
	}

	if skipped > 0 {
		r.logger.Warn("stations without valid coordinates skipped", zap.Int("skipped", skipped))
	}

	return stations, skipped, nil
}

func (r *stationRepository) toDomain(row stationRow) domain.Station {
	st := domain.Station{
		ID:             row.ID,
		Operator:       row.Operator,
		Street:         row.Street,
		HouseNumber:    row.HouseNumber,
		PostalCode:     row.PostalCode,
		City:           row.City,
		Lat:            row.Lat.Float64,
		Lon:            row.Lon.Float64,
		PowerKW:        row.PowerKW,
		ChargePoints:   row.ChargePoints,
		Cost:           r.defaults.Cost,
		CoverageWeight: r.defaults.Coverage,
	}
	// значения из БД не исправляются: отрицательные дойдут до валидации оптимизатора
	if row.Cost.Valid {
		st.Cost = row.Cost.Float64
	}
	if row.CoverageWeight.Valid {
		st.CoverageWeight = row.CoverageWeight.Float64
	}
	if row.CommissionedAt.Valid {
		ts := row.CommissionedAt.Time
		st.CommissionedAt = &ts
	}
	return st
}

// ReplaceAll заменяет содержимое реестра в одной транзакции
func (r *stationRepository) ReplaceAll(ctx context.Context, stations []domain.Station) error {
	insert := fmt.Sprintf(`
		INSERT INTO %s (
			id, operator, street, house_number, postal_code, city,
			lat, lon, power_kw, charge_points, cost, coverage_weight, commissioned_at
		) VALUES (
			:id, :operator, :street, :house_number, :postal_code, :city,
			:lat, :lon, :power_kw, :charge_points, :cost, :coverage_weight, :commissioned_at
		)
	`, stationsTable)

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+stationsTable); err != nil {
			return fmt.Errorf("clear stations: %w", err)
		}

		stmt, err := tx.PrepareNamedContext(ctx, insert)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, st := range stations {
			if _, err := stmt.ExecContext(ctx, st); err != nil {
				return fmt.Errorf("insert station %d: %w", st.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("failed to replace stations", zap.Error(err))
		return err
	}

	r.logger.Info("stations replaced", zap.Int("count", len(stations)))
	return nil
}

func (r *stationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+stationsTable); err != nil {
		return 0, fmt.Errorf("count stations: %w", err)
	}
	return count, nil
}
