package user

import (
	"context"

	"orderbot/internal/domain"
)

type Repository interface {
	// GetOrCreate returns the user for chatID, creating a fresh record on the
	// first event from an unknown user.
	GetOrCreate(ctx context.Context, chatID int64, username, firstName, lastName string) (*domain.User, error)
	UpdatePhone(ctx context.Context, chatID int64, phone string) error
	// ListChatIDs returns every user that ever started a dialogue; the
	// broadcast audience.
	ListChatIDs(ctx context.Context) ([]int64, error)
}
