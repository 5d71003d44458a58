package category

import (
	"context"

	"orderbot/internal/domain"
)

type Repository interface {
	ListAll(ctx context.Context) ([]domain.Category, error)
	ListMain(ctx context.Context) ([]domain.Category, error)
	ListSub(ctx context.Context, parentID string) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, name string, parentID *string, sortOrder int) (*domain.Category, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	DeleteByParent(ctx context.Context, parentID string) error
}
