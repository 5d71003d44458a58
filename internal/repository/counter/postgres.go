package counter

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// Next increments the named counter and returns the new value in a single
// statement. An unseen name starts at zero, so the first value issued is 1.
// Postgres row locking serializes concurrent callers; no duplicates are
// possible even under concurrent issuance.
func (r *postgresRepo) Next(ctx context.Context, name string) (int64, error) {
	const q = `
INSERT INTO counters (name, value)
VALUES ($1, 1)
ON CONFLICT (name)
DO UPDATE SET value = counters.value + 1
RETURNING value
`
	var value int64
	if err := r.pool.QueryRow(ctx, q, name).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}
