package catalog

import (
	"context"
	"errors"
	"strings"

	"orderbot/internal/domain"
	productrepo "orderbot/internal/repository/product"
)

type Service struct {
	categories categoryRepo
	products   productRepo
}

type categoryRepo interface {
	ListAll(ctx context.Context) ([]domain.Category, error)
	ListMain(ctx context.Context) ([]domain.Category, error)
	ListSub(ctx context.Context, parentID string) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, name string, parentID *string, sortOrder int) (*domain.Category, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	DeleteByParent(ctx context.Context, parentID string) error
}

type productRepo interface {
	ListActiveByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, patch productrepo.Patch) error
	Delete(ctx context.Context, id string) error
	DeleteByCategory(ctx context.Context, categoryID string) error
}

func New(categories categoryRepo, products productRepo) *Service {
	return &Service{categories: categories, products: products}
}

func (s *Service) MainCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListMain(ctx)
}

func (s *Service) Subcategories(ctx context.Context, parentID string) ([]domain.Category, error) {
	return s.categories.ListSub(ctx, parentID)
}

func (s *Service) AllCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListAll(ctx)
}

func (s *Service) Category(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// LeafCategories returns categories without subcategories; products can only
// be attached to these.
func (s *Service) LeafCategories(ctx context.Context) ([]domain.Category, error) {
	all, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	hasChildren := make(map[string]bool)
	for _, c := range all {
		if c.ParentID != nil {
			hasChildren[*c.ParentID] = true
		}
	}
	var leaves []domain.Category
	for _, c := range all {
		if !hasChildren[c.ID] {
			leaves = append(leaves, c)
		}
	}
	return leaves, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string, parentID *string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name required")
	}
	return s.categories.Create(ctx, name, parentID, 0)
}

func (s *Service) RenameCategory(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("name required")
	}
	return s.categories.Rename(ctx, id, name)
}

// DeleteCategory removes the category, its direct subcategories and the
// products attached to the category itself. Products attached to the deleted
// subcategories are left behind: the cascade is one level deep, matching the
// depth customers can navigate when the tree is gone.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.DeleteByParent(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	return s.products.DeleteByCategory(ctx, id)
}

func (s *Service) ActiveProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return s.products.ListActiveByCategory(ctx, categoryID)
}

func (s *Service) AllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListAll(ctx)
}

func (s *Service) Product(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

type CreateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	CategoryID  string
}

func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}
	if in.PriceCents <= 0 {
		return nil, errors.New("price must be positive")
	}
	if in.CategoryID == "" {
		return nil, errors.New("category required")
	}
	return s.products.Create(ctx, domain.Product{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
	})
}

func (s *Service) UpdateProduct(ctx context.Context, id string, patch productrepo.Patch) error {
	return s.products.Update(ctx, id, patch)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}
