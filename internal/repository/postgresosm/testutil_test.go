package postgresosm

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupTestDB подключается к OSM базе из docker-compose; без неё тест пропускается
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=2",
		getEnv("OSM_DB_HOST", "localhost"),
		getEnv("OSM_DB_PORT", "5435"),
		getEnv("OSM_DB_USER", "osmuser"),
		getEnv("OSM_DB_PASSWORD", "osmpass"),
		getEnv("OSM_DB_NAME", "osm"),
		getEnv("OSM_DB_SSLMODE", "disable"),
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("OSM database unavailable: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		t.Skipf("OSM database unavailable: %v", err)
	}

	return NewDBForTest(db, zap.NewNop())
}

// skipIfNoOSMData skips the test if OSM data is not available
func skipIfNoOSMData(t *testing.T, db *DB) {
	t.Helper()

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", planetLineTable)
	if err := db.QueryRowContext(context.Background(), query).Scan(&count); err != nil || count == 0 {
		t.Skipf("OSM data not available: %v", err)
	}
}
