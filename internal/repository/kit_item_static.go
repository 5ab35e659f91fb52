package repository

import (
	"context"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/kit-service/internal/domain"
)

type staticKitItemRepository struct {
	items []domain.KitItem
}

// NewStaticKitItemRepository serves a fixed catalog, typically the seed file,
// when no database is configured. Items without an ID get a positional one.
func NewStaticKitItemRepository(items []domain.KitItem) KitItemRepository {
	copied := make([]domain.KitItem, len(items))
	copy(copied, items)
	for i := range copied {
		if copied[i].ID == "" {
			copied[i].ID = "seed-" + strconv.Itoa(i+1)
		}
	}
	sort.SliceStable(copied, func(i, j int) bool { return copied[i].Position < copied[j].Position })
	return &staticKitItemRepository{items: copied}
}

func (r *staticKitItemRepository) Create(context.Context, *domain.KitItem) error { return ErrReadOnly }

func (r *staticKitItemRepository) Update(context.Context, *domain.KitItem) error { return ErrReadOnly }

func (r *staticKitItemRepository) Delete(context.Context, string) error { return ErrReadOnly }

func (r *staticKitItemRepository) GetByID(_ context.Context, id string) (*domain.KitItem, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *staticKitItemRepository) ListActive(context.Context) ([]domain.KitItem, error) {
	out := make([]domain.KitItem, 0, len(r.items))
	for _, item := range r.items {
		if item.Active {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *staticKitItemRepository) ListAll(context.Context) ([]domain.KitItem, error) {
	out := make([]domain.KitItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *staticKitItemRepository) Count(context.Context) (int, error) {
	return len(r.items), nil
}
