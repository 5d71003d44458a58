package roster

import (
	"context"

	"orderbot/internal/domain"
)

// Repository is a membership list of chat ids. Admins and notification
// receivers share the shape and differ only in table.
type Repository interface {
	Contains(ctx context.Context, chatID int64) (bool, error)
	List(ctx context.Context) ([]domain.RosterEntry, error)
	// Add registers chatID; a duplicate yields ErrAlreadyExists, not an error
	// state the caller should abort on.
	Add(ctx context.Context, chatID, addedBy int64) error
	Remove(ctx context.Context, chatID int64) error
}
