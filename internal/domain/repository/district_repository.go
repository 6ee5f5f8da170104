package repository

import (
	"context"

	"github.com/ev-siting/internal/domain"
)

// DistrictRepository определяет методы для работы с границами округов
type DistrictRepository interface {
	// GetAll возвращает все строки округов с WKT геометрией
	GetAll(ctx context.Context) ([]domain.DistrictRecord, error)

	// ReplaceAll атомарно заменяет набор округов
	ReplaceAll(ctx context.Context, records []domain.DistrictRecord) error
}
