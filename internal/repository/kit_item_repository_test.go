package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/kit-service/internal/domain"
)

func goalPtr(g domain.Goal) *domain.Goal { return &g }

func sampleItems() []domain.KitItem {
	return []domain.KitItem{
		{Kind: domain.KitKindWorkout, Title: "Treinos", Position: 50, Active: true},
		{Kind: domain.KitKindMenu, Title: "Cardápio", Position: 10, Active: true},
		{Kind: domain.KitKindSchedule, Title: "Jejum", Goal: goalPtr(domain.GoalWeightLoss), Position: 30, Active: false},
	}
}

func TestStaticKitItemRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStaticKitItemRepository(sampleItems())

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Cardápio", all[0].Title)
	assert.Equal(t, "Jejum", all[1].Title)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	item, err := repo.GetByID(ctx, all[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "Treinos", item.Title)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.ErrorIs(t, repo.Create(ctx, &domain.KitItem{}), ErrReadOnly)
	assert.ErrorIs(t, repo.Update(ctx, &domain.KitItem{}), ErrReadOnly)
	assert.ErrorIs(t, repo.Delete(ctx, all[0].ID), ErrReadOnly)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

type countingRepo struct {
	KitItemRepository
	listActiveCalls int
}

func (r *countingRepo) ListActive(ctx context.Context) ([]domain.KitItem, error) {
	r.listActiveCalls++
	return r.KitItemRepository.ListActive(ctx)
}

type writableRepo struct {
	countingRepo
	created []domain.KitItem
}

func (r *writableRepo) Create(_ context.Context, item *domain.KitItem) error {
	r.created = append(r.created, *item)
	return nil
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCachedKitItemRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)

	inner := &countingRepo{KitItemRepository: NewStaticKitItemRepository(sampleItems())}
	repo := NewCachedKitItemRepository(inner, client, time.Minute, zap.NewNop())

	first, err := repo.ListActive(ctx)
	require.NoError(t, err)
	second, err := repo.ListActive(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.listActiveCalls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(ActiveKitCacheKey))

	mr.FastForward(2 * time.Minute)
	_, err = repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.listActiveCalls)
}

func TestCachedKitItemRepository_InvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)

	inner := &writableRepo{countingRepo: countingRepo{KitItemRepository: NewStaticKitItemRepository(sampleItems())}}
	repo := NewCachedKitItemRepository(inner, client, time.Minute, zap.NewNop())

	_, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(ActiveKitCacheKey))

	require.NoError(t, repo.Create(ctx, &domain.KitItem{Kind: domain.KitKindMenu, Title: "Novo"}))
	assert.False(t, mr.Exists(ActiveKitCacheKey))
	assert.Len(t, inner.created, 1)
}

func TestCachedKitItemRepository_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	require.NoError(t, mr.Set(ActiveKitCacheKey, "{not json"))

	inner := &countingRepo{KitItemRepository: NewStaticKitItemRepository(sampleItems())}
	repo := NewCachedKitItemRepository(inner, client, time.Minute, zap.NewNop())

	items, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, inner.listActiveCalls)
}

func TestCachedKitItemRepository_RedisDown(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	mr.Close()

	inner := &countingRepo{KitItemRepository: NewStaticKitItemRepository(sampleItems())}
	repo := NewCachedKitItemRepository(inner, client, time.Minute, zap.NewNop())

	items, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestNewCachedKitItemRepository_Disabled(t *testing.T) {
	inner := NewStaticKitItemRepository(nil)
	assert.Same(t, inner, NewCachedKitItemRepository(inner, nil, time.Minute, zap.NewNop()))
}
