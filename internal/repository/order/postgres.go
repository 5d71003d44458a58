package order

import (
	"context"
	"encoding/json"
	"io"
	"log"

	"github.com/google/uuid"
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

const selectCols = `id::text, order_number, user_chat_id, customer_name, phone, address, comment, delivery_type, delivery_cost_cents, items, items_total_cents, status, created_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	const q = `
INSERT INTO orders (id, order_number, user_chat_id, customer_name, phone, address, comment,
                    delivery_type, delivery_cost_cents, items, items_total_cents, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING created_at
`
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = domain.OrderStatusNew
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}
	if err := r.pool.QueryRow(ctx, q,
		o.ID, o.OrderNumber, o.UserChatID, o.CustomerName, o.Phone, o.Address, o.Comment,
		o.DeliveryType, o.DeliveryCostCents, items, o.ItemsTotalCents, o.Status,
	).Scan(&o.CreatedAt); err != nil {
		r.logger.Printf("order repo: create number=%d error=%v", o.OrderNumber, err)
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s number=%d total_cents=%d", o.ID, o.OrderNumber, o.ItemsTotalCents)
	return &o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userChatID int64, limit int) ([]domain.Order, error) {
	const q = `
SELECT ` + selectCols + `
FROM orders
WHERE user_chat_id = $1
ORDER BY created_at DESC
LIMIT $2
`
	return r.list(ctx, q, userChatID, limit)
}

func (r *postgresRepo) List(ctx context.Context, limit int) ([]domain.Order, error) {
	const q = `
SELECT ` + selectCols + `
FROM orders
ORDER BY created_at DESC
LIMIT $1
`
	return r.list(ctx, q, limit)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id::text = $1`, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		var items []byte
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.UserChatID, &o.CustomerName, &o.Phone, &o.Address, &o.Comment,
			&o.DeliveryType, &o.DeliveryCostCents, &items, &o.ItemsTotalCents, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
