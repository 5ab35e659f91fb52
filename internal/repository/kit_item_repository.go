package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/kit-service/internal/domain"
)

// ErrReadOnly is returned by catalogs that cannot be modified.
var ErrReadOnly = errors.New("kit catalog is read-only")

// KitItemRepository manages reward kit catalog persistence.
type KitItemRepository interface {
	Create(ctx context.Context, item *domain.KitItem) error
	Update(ctx context.Context, item *domain.KitItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.KitItem, error)
	ListActive(ctx context.Context) ([]domain.KitItem, error)
	ListAll(ctx context.Context) ([]domain.KitItem, error)
	Count(ctx context.Context) (int, error)
}

type kitItemRepository struct {
	pool *pgxpool.Pool
}

// NewKitItemRepository builds the Postgres-backed repository.
func NewKitItemRepository(pool *pgxpool.Pool) KitItemRepository {
	return &kitItemRepository{pool: pool}
}

const kitItemColumns = `id, kind, title, description, url, goal, position, is_active, created_at, updated_at`

func (r *kitItemRepository) Create(ctx context.Context, item *domain.KitItem) error {
	const query = `
        INSERT INTO kit_items (kind, title, description, url, goal, position, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		string(item.Kind),
		item.Title,
		item.Description,
		item.URL,
		goalParam(item.Goal),
		item.Position,
		item.Active,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *kitItemRepository) Update(ctx context.Context, item *domain.KitItem) error {
	if !validID(item.ID) {
		return pgx.ErrNoRows
	}
	const query = `
        UPDATE kit_items SET kind=$1, title=$2, description=$3, url=$4, goal=$5, position=$6, is_active=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		string(item.Kind),
		item.Title,
		item.Description,
		item.URL,
		goalParam(item.Goal),
		item.Position,
		item.Active,
		item.ID,
	).Scan(&item.UpdatedAt)
}

func (r *kitItemRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM kit_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *kitItemRepository) GetByID(ctx context.Context, id string) (*domain.KitItem, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	query := `SELECT ` + kitItemColumns + ` FROM kit_items WHERE id=$1`
	item, err := scanKitItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *kitItemRepository) ListActive(ctx context.Context) ([]domain.KitItem, error) {
	return r.list(ctx, `SELECT `+kitItemColumns+` FROM kit_items WHERE is_active = TRUE ORDER BY position, created_at`)
}

func (r *kitItemRepository) ListAll(ctx context.Context) ([]domain.KitItem, error) {
	return r.list(ctx, `SELECT `+kitItemColumns+` FROM kit_items ORDER BY position, created_at`)
}

func (r *kitItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM kit_items`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *kitItemRepository) list(ctx context.Context, query string) ([]domain.KitItem, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.KitItem
	for rows.Next() {
		item, err := scanKitItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

func scanKitItem(row pgx.Row) (*domain.KitItem, error) {
	var (
		item domain.KitItem
		kind string
		goal *string
	)
	if err := row.Scan(
		&item.ID,
		&kind,
		&item.Title,
		&item.Description,
		&item.URL,
		&goal,
		&item.Position,
		&item.Active,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	item.Kind = domain.KitKind(kind)
	if goal != nil {
		g := domain.Goal(*goal)
		item.Goal = &g
	}
	return &item, nil
}

func goalParam(goal *domain.Goal) *string {
	if goal == nil {
		return nil
	}
	s := string(*goal)
	return &s
}

// validID keeps malformed ids from reaching the uuid column as a query error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
