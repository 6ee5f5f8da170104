package repository

import (
	"context"

	"github.com/ev-siting/internal/domain"
)

// StationRepository определяет методы для работы с реестром зарядных станций
type StationRepository interface {
	// GetAll возвращает все станции с валидными координатами и количество
	// отброшенных строк (NULL/невалидные координаты)
	GetAll(ctx context.Context) ([]domain.Station, int, error)

	// ReplaceAll атомарно заменяет содержимое реестра
	ReplaceAll(ctx context.Context, stations []domain.Station) error

	// Count возвращает количество строк в реестре
	Count(ctx context.Context) (int, error)
}
