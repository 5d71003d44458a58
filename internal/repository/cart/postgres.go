package cart

import (
	"context"
	"errors"

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

func (r *postgresRepo) Get(ctx context.Context, userChatID int64) ([]domain.CartLine, error) {
	const q = `
SELECT product_id::text, product_name, quantity, unit_price_cents
FROM cart_lines
WHERE user_chat_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userChatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.Quantity, &line.UnitPriceCents); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Add merges a line into the cart in a single statement. On conflict only the
// quantity grows: the first-seen name and unit price snapshot win, and two
// near-simultaneous adds for the same user cannot lose an increment.
func (r *postgresRepo) Add(ctx context.Context, userChatID int64, line domain.CartLine) error {
	const q = `
INSERT INTO cart_lines (user_chat_id, product_id, product_name, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_chat_id, product_id)
DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
`
	_, err := r.pool.Exec(ctx, q, userChatID, line.ProductID, line.ProductName, line.Quantity, line.UnitPriceCents)
	return err
}

// Adjust changes an existing line's quantity by delta with a relative update,
// so concurrent presses cannot lose a step. The line is removed once its
// quantity reaches zero or below; a missing line is a no-op.
func (r *postgresRepo) Adjust(ctx context.Context, userChatID int64, productID string, delta int) error {
	const q = `
UPDATE cart_lines
SET quantity = quantity + $3
WHERE user_chat_id = $1 AND product_id = $2
RETURNING quantity
`
	var quantity int
	err := r.pool.QueryRow(ctx, q, userChatID, productID, delta).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if quantity > 0 {
		return nil
	}
	_, err = r.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE user_chat_id = $1 AND product_id = $2 AND quantity <= 0
`, userChatID, productID)
	return err
}

// SetQuantity updates an existing line, or removes it when quantity drops to
// zero or below. A missing line is not an error either way; only Add creates.
func (r *postgresRepo) SetQuantity(ctx context.Context, userChatID int64, productID string, quantity int) error {
	if quantity <= 0 {
		_, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE user_chat_id = $1 AND product_id = $2
`, userChatID, productID)
		return err
	}
	_, err := r.pool.Exec(ctx, `
UPDATE cart_lines
SET quantity = $3
WHERE user_chat_id = $1 AND product_id = $2
`, userChatID, productID, quantity)
	return err
}

func (r *postgresRepo) Clear(ctx context.Context, userChatID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE user_chat_id = $1`, userChatID)
	return err
}
