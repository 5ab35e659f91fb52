package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/kit-service/internal/domain"
)

// ActiveKitCacheKey holds the cached active catalog.
const ActiveKitCacheKey = "kit:items:active"

type cachedKitItemRepository struct {
	KitItemRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedKitItemRepository adds a Redis read-through cache for the active
// catalog. Writes go to the wrapped repository and drop the cached copy.
// Cache failures are logged and the wrapped repository is used directly.
func NewCachedKitItemRepository(inner KitItemRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) KitItemRepository {
	if client == nil || ttl <= 0 {
		return inner
	}
	return &cachedKitItemRepository{KitItemRepository: inner, client: client, ttl: ttl, logger: logger}
}

func (r *cachedKitItemRepository) ListActive(ctx context.Context) ([]domain.KitItem, error) {
	raw, err := r.client.Get(ctx, ActiveKitCacheKey).Bytes()
	switch {
	case err == nil:
		var items []domain.KitItem
		if jsonErr := json.Unmarshal(raw, &items); jsonErr == nil {
			return items, nil
		}
		r.logger.Warn("discarding corrupt kit cache entry")
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("kit cache read failed", zap.Error(err))
	}

	items, err := r.KitItemRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(items); jsonErr == nil {
		if setErr := r.client.Set(ctx, ActiveKitCacheKey, encoded, r.ttl).Err(); setErr != nil {
			r.logger.Warn("kit cache write failed", zap.Error(setErr))
		}
	}
	return items, nil
}

func (r *cachedKitItemRepository) Create(ctx context.Context, item *domain.KitItem) error {
	if err := r.KitItemRepository.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedKitItemRepository) Update(ctx context.Context, item *domain.KitItem) error {
	if err := r.KitItemRepository.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedKitItemRepository) Delete(ctx context.Context, id string) error {
	if err := r.KitItemRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedKitItemRepository) invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, ActiveKitCacheKey).Err(); err != nil {
		r.logger.Warn("kit cache invalidation failed", zap.Error(err))
	}
}
