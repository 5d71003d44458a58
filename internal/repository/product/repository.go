package product

import (
	"context"

	"orderbot/internal/domain"
)

// Patch updates only the non-nil fields.
type Patch struct {
	Name        *string
	Description *string
	PriceCents  *int64
	ImageURL    *string
}

type Repository interface {
	ListActiveByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
	DeleteByCategory(ctx context.Context, categoryID string) error
}
