package session

import (
	"context"

	"orderbot/internal/domain"
)

// Repository persists per-user dialogue state. Get returns ErrNotFound for a
// user without a stored session; the engine starts such users in Idle.
type Repository interface {
	Get(ctx context.Context, userChatID int64) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
}
