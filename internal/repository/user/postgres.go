package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderbot/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetOrCreate(ctx context.Context, chatID int64, username, firstName, lastName string) (*domain.User, error) {
	const q = `
INSERT INTO users (id, chat_id, username, first_name, last_name)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (chat_id) DO UPDATE SET chat_id = EXCLUDED.chat_id
RETURNING id::text, chat_id, username, first_name, last_name, phone, created_at
`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, uuid.NewString(), chatID, username, firstName, lastName).
		Scan(&u.ID, &u.ChatID, &u.Username, &u.FirstName, &u.LastName, &u.Phone, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepo) UpdatePhone(ctx context.Context, chatID int64, phone string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET phone = $2 WHERE chat_id = $1`, chatID, phone)
	return err
}

func (r *postgresRepo) ListChatIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT chat_id FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
