package cart

import (
	"context"
	"errors"

	"orderbot/internal/domain"
)

type Service struct {
	repo     cartRepo
	products productRepo
}

type cartRepo interface {
	Get(ctx context.Context, userChatID int64) ([]domain.CartLine, error)
	Add(ctx context.Context, userChatID int64, line domain.CartLine) error
	Adjust(ctx context.Context, userChatID int64, productID string, delta int) error
	SetQuantity(ctx context.Context, userChatID int64, productID string, quantity int) error
	Clear(ctx context.Context, userChatID int64) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// Add merges quantity of the given product into the user's cart, snapshotting
// the product's current name and price on first add. Later adds for the same
// product only grow the quantity; the stored snapshot is not refreshed.
func (s *Service) Add(ctx context.Context, userChatID int64, productID string, quantity int) (*domain.Product, error) {
	if quantity < 1 {
		return nil, errors.New("quantity must be positive")
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	line := domain.CartLine{
		ProductID:      product.ID,
		ProductName:    product.Name,
		Quantity:       quantity,
		UnitPriceCents: product.PriceCents,
	}
	if err := s.repo.Add(ctx, userChatID, line); err != nil {
		return nil, err
	}
	return product, nil
}

// Adjust shifts an existing line's quantity by delta relative to the stored
// value, never relative to a previously read copy. The line is removed once
// it reaches zero; an absent line stays absent.
func (s *Service) Adjust(ctx context.Context, userChatID int64, productID string, delta int) error {
	return s.repo.Adjust(ctx, userChatID, productID, delta)
}

// SetQuantity sets an existing line's quantity; zero or less removes the line.
// It never creates a line and does not fail for an absent product.
func (s *Service) SetQuantity(ctx context.Context, userChatID int64, productID string, quantity int) error {
	return s.repo.SetQuantity(ctx, userChatID, productID, quantity)
}

func (s *Service) Clear(ctx context.Context, userChatID int64) error {
	return s.repo.Clear(ctx, userChatID)
}

// Get returns the user's cart lines; an unknown user has an empty cart.
func (s *Service) Get(ctx context.Context, userChatID int64) ([]domain.CartLine, error) {
	lines, err := s.repo.Get(ctx, userChatID)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Total sums quantity times unit price over the given lines.
func Total(lines []domain.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.LineTotalCents()
	}
	return total
}
