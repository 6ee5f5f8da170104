package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InsertRawStation вставляет строку реестра напрямую, минуя репозиторий:
// nil в lat/lon/cost моделирует пустые ячейки исходного файла
func InsertRawStation(ctx context.Context, db *sqlx.DB, id int64, operator string, lat, lon, cost *float64) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO charging_stations (id, operator, lat, lon, cost, power_kw)
		VALUES ($1, $2, $3, $4, $5, 22)
	`, id, operator, lat, lon, cost)
	if err != nil {
		return fmt.Errorf("insert raw station %d: %w", id, err)
	}
	return nil
}

// Float returns pointer to v
func Float(v float64) *float64 {
	return &v
}
