package session

import (
	"context"
	"encoding/json"
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

// sessionContext is the jsonb shape stored alongside the state column.
type sessionContext struct {
	Checkout   *domain.CheckoutContext `json:"checkout,omitempty"`
	Admin      *domain.AdminContext    `json:"admin,omitempty"`
	Quantities map[string]int          `json:"quantities,omitempty"`
}

func (r *postgresRepo) Get(ctx context.Context, userChatID int64) (*domain.Session, error) {
	const q = `
SELECT state, context, updated_at
FROM sessions
WHERE user_chat_id = $1
`
	s := domain.Session{UserChatID: userChatID}
	var raw []byte
	err := r.pool.QueryRow(ctx, q, userChatID).Scan(&s.State, &raw, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var sc sessionContext
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, err
	}
	s.Checkout = sc.Checkout
	s.Admin = sc.Admin
	s.Quantities = sc.Quantities
	return &s, nil
}

func (r *postgresRepo) Save(ctx context.Context, s *domain.Session) error {
	const q = `
INSERT INTO sessions (user_chat_id, state, context, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_chat_id)
DO UPDATE SET state = EXCLUDED.state, context = EXCLUDED.context, updated_at = now()
`
	raw, err := json.Marshal(sessionContext{Checkout: s.Checkout, Admin: s.Admin, Quantities: s.Quantities})
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, q, s.UserChatID, s.State, raw)
	return err
}
