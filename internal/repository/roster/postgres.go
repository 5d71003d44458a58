package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderbot/internal/domain"
)

type postgresRepo struct {
	pool  *pgxpool.Pool
	table string
}

// NewAdmins stores the operator roster.
func NewAdmins(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool, table: "admins"}
}

// NewReceivers stores the order-notification roster.
func NewReceivers(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool, table: "receivers"}
}

func (r *postgresRepo) Contains(ctx context.Context, chatID int64) (bool, error) {
	q := fmt.Sprintf(`SELECT 1 FROM %s WHERE chat_id = $1`, r.table)
	var one int
	err := r.pool.QueryRow(ctx, q, chatID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.RosterEntry, error) {
	q := fmt.Sprintf(`SELECT chat_id, added_by, created_at FROM %s ORDER BY created_at ASC`, r.table)
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RosterEntry
	for rows.Next() {
		var e domain.RosterEntry
		if err := rows.Scan(&e.ChatID, &e.AddedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Add(ctx context.Context, chatID, addedBy int64) error {
	q := fmt.Sprintf(`INSERT INTO %s (chat_id, added_by) VALUES ($1, $2) ON CONFLICT (chat_id) DO NOTHING`, r.table)
	cmd, err := r.pool.Exec(ctx, q, chatID, addedBy)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (r *postgresRepo) Remove(ctx context.Context, chatID int64) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE chat_id = $1`, r.table)
	cmd, err := r.pool.Exec(ctx, q, chatID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
