package cart

import (
	"context"

	"orderbot/internal/domain"
)

// Repository stores per-user cart lines. At most one line exists per
// (user, product); the schema enforces this with a composite primary key.
type Repository interface {
	Get(ctx context.Context, userChatID int64) ([]domain.CartLine, error)
	Add(ctx context.Context, userChatID int64, line domain.CartLine) error
	Adjust(ctx context.Context, userChatID int64, productID string, delta int) error
	SetQuantity(ctx context.Context, userChatID int64, productID string, quantity int) error
	Clear(ctx context.Context, userChatID int64) error
}
