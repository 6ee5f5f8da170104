package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

const (
	stationsTable  = "charging_stations"
	districtsTable = "districts"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema создаёт таблицы сервиса, если их ещё нет
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	db.logger.Info("Database schema ensured")
	return nil
}
