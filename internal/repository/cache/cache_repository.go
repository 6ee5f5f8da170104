package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/domain/repository"
)

const (
	statsKeyPrefix = "siting:stats:"
	nodesKeyPrefix = "siting:nodes:"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

// Get возвращает nil, nil при промахе
func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

// GetStats получает статистику каталога заданной версии.
// Ключ включает версию, поэтому после перезагрузки каталога старая запись не читается.
func (r *cacheRepository) GetStats(ctx context.Context, version string) (*domain.Statistics, error) {
	var stats domain.Statistics
	found, err := r.getJSON(ctx, statsKeyPrefix+version, &stats)
	if err != nil || !found {
		return nil, err
	}
	return &stats, nil
}

func (r *cacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	return r.setJSON(ctx, statsKeyPrefix+stats.CatalogVersion, stats, ttl)
}

func (r *cacheRepository) DeleteStats(ctx context.Context, version string) error {
	return r.Delete(ctx, statsKeyPrefix+version)
}

func (r *cacheRepository) GetTrafficNodes(ctx context.Context, key string) ([]domain.TrafficNode, error) {
	var nodes []domain.TrafficNode
	found, err := r.getJSON(ctx, nodesKeyPrefix+key, &nodes)
	if err != nil || !found {
		return nil, err
	}
	if nodes == nil {
		nodes = []domain.TrafficNode{}
	}
	return nodes, nil
}

func (r *cacheRepository) SetTrafficNodes(ctx context.Context, key string, nodes []domain.TrafficNode, ttl time.Duration) error {
	return r.setJSON(ctx, nodesKeyPrefix+key, nodes, ttl)
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal value for cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return r.Set(ctx, key, data, ttl)
}
