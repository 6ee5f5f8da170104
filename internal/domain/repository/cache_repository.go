package repository

import (
	"context"
	"time"

	"github.com/ev-siting/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetStats получает статистику каталога заданной версии
	GetStats(ctx context.Context, version string) (*domain.Statistics, error)

	// SetStats сохраняет статистику каталога
	SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error

	// DeleteStats удаляет статистику каталога заданной версии
	DeleteStats(ctx context.Context, version string) error

	// GetTrafficNodes получает узлы дорожной сети по ключу выборки
	GetTrafficNodes(ctx context.Context, key string) ([]domain.TrafficNode, error)

	// SetTrafficNodes сохраняет узлы дорожной сети
	SetTrafficNodes(ctx context.Context, key string, nodes []domain.TrafficNode, ttl time.Duration) error
}
