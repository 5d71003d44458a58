package category

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderbot/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const selectCols = `id::text, name, parent_id::text, sort_order, created_at`

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Category, error) {
	return r.list(ctx, `SELECT `+selectCols+` FROM categories ORDER BY sort_order ASC, name ASC`)
}

func (r *postgresRepo) ListMain(ctx context.Context) ([]domain.Category, error) {
	return r.list(ctx, `SELECT `+selectCols+` FROM categories WHERE parent_id IS NULL ORDER BY sort_order ASC, name ASC`)
}

func (r *postgresRepo) ListSub(ctx context.Context, parentID string) ([]domain.Category, error) {
	return r.list(ctx, `SELECT `+selectCols+` FROM categories WHERE parent_id = $1 ORDER BY sort_order ASC, name ASC`, parentID)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := r.pool.QueryRow(ctx, `SELECT `+selectCols+` FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.ParentID, &c.SortOrder, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Create(ctx context.Context, name string, parentID *string, sortOrder int) (*domain.Category, error) {
	const q = `
INSERT INTO categories (id, name, parent_id, sort_order)
VALUES ($1, $2, $3, $4)
RETURNING created_at
`
	c := domain.Category{ID: uuid.NewString(), Name: name, ParentID: parentID, SortOrder: sortOrder}
	if err := r.pool.QueryRow(ctx, q, c.ID, c.Name, c.ParentID, c.SortOrder).Scan(&c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Rename(ctx context.Context, id, name string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE categories SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteByParent(ctx context.Context, parentID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE parent_id = $1`, parentID)
	return err
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
