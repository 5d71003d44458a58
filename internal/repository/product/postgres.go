package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderbot/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const selectCols = `id::text, name, description, price_cents, image_url, category_id::text, is_active, sort_order, created_at`

func (r *postgresRepo) ListActiveByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	const q = `
SELECT ` + selectCols + `
FROM products
WHERE category_id = $1 AND is_active
ORDER BY sort_order ASC, created_at ASC
`
	return r.list(ctx, q, categoryID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+selectCols+` FROM products ORDER BY created_at ASC`)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `SELECT `+selectCols+` FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.ImageURL, &p.CategoryID, &p.IsActive, &p.SortOrder, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, price_cents, image_url, category_id, is_active, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at
`
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.IsActive = true
	if err := r.pool.QueryRow(ctx, q, p.ID, p.Name, p.Description, p.PriceCents, p.ImageURL, p.CategoryID, p.IsActive, p.SortOrder).Scan(&p.CreatedAt); err != nil {
		r.logger.Printf("product repo: create name=%q error=%v", p.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s name=%q", p.ID, p.Name)
	return &p, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, patch Patch) error {
	const q = `
UPDATE products
SET name        = COALESCE($2, name),
    description = COALESCE($3, description),
    price_cents = COALESCE($4, price_cents),
    image_url   = COALESCE($5, image_url)
WHERE id = $1
`
	cmd, err := r.pool.Exec(ctx, q, id, patch.Name, patch.Description, patch.PriceCents, patch.ImageURL)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteByCategory(ctx context.Context, categoryID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM products WHERE category_id = $1`, categoryID)
	return err
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.ImageURL, &p.CategoryID, &p.IsActive, &p.SortOrder, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
