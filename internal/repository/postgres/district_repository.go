package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/domain/repository"
)

type districtRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDistrictRepository создает репозиторий границ округов
func NewDistrictRepository(db *DB) repository.DistrictRepository {
	return &districtRepository{
		db:     db,
		logger: db.logger,
	}
}

// GetAll возвращает строки округов в порядке вставки; несколько строк
// с одним именем объединяются уровнем выше
func (r *districtRepository) GetAll(ctx context.Context) ([]domain.DistrictRecord, error) {
	var records []domain.DistrictRecord
	query := fmt.Sprintf(`SELECT name, wkt FROM %s ORDER BY id`, districtsTable)
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		r.logger.Error("failed to load districts", zap.Error(err))
		return nil, fmt.Errorf("select districts: %w", err)
	}
	return records, nil
}

func (r *districtRepository) ReplaceAll(ctx context.Context, records []domain.DistrictRecord) error {
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+districtsTable); err != nil {
			return fmt.Errorf("clear districts: %w", err)
		}
		insert := fmt.Sprintf(`INSERT INTO %s (name, wkt) VALUES ($1, $2)`, districtsTable)
		for _, rec := range records {
			if _, err := tx.ExecContext(ctx, insert, rec.Name, rec.WKT); err != nil {
				return fmt.Errorf("insert district %q: %w", rec.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("failed to replace districts", zap.Error(err))
		return err
	}

	r.logger.Info("districts replaced", zap.Int("count", len(records)))
	return nil
}
