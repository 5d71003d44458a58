package catalog

import (
	"context"
	"errors"
	"testing"

	"orderbot/internal/domain"
	productrepo "orderbot/internal/repository/product"
)

type stubCategories struct {
	all           []domain.Category
	deleted       []string
	deletedParent []string
}

func (s *stubCategories) ListAll(_ context.Context) ([]domain.Category, error) { return s.all, nil }

func (s *stubCategories) ListMain(_ context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range s.all {
		if c.ParentID == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCategories) ListSub(_ context.Context, parentID string) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range s.all {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCategories) GetByID(_ context.Context, id string) (*domain.Category, error) {
	for _, c := range s.all {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCategories) Create(_ context.Context, name string, parentID *string, sortOrder int) (*domain.Category, error) {
	c := domain.Category{ID: "new", Name: name, ParentID: parentID, SortOrder: sortOrder}
	s.all = append(s.all, c)
	return &c, nil
}

func (s *stubCategories) Rename(_ context.Context, id, name string) error {
	for i, c := range s.all {
		if c.ID == id {
			s.all[i].Name = name
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubCategories) Delete(_ context.Context, id string) error {
	for i, c := range s.all {
		if c.ID == id {
			s.all = append(s.all[:i], s.all[i+1:]...)
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubCategories) DeleteByParent(_ context.Context, parentID string) error {
	s.deletedParent = append(s.deletedParent, parentID)
	kept := s.all[:0]
	for _, c := range s.all {
		if c.ParentID == nil || *c.ParentID != parentID {
			kept = append(kept, c)
		}
	}
	s.all = kept
	return nil
}

type stubProducts struct {
	all []domain.Product
}

func (s *stubProducts) ListActiveByCategory(_ context.Context, categoryID string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.all {
		if p.CategoryID == categoryID && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProducts) ListAll(_ context.Context) ([]domain.Product, error) { return s.all, nil }

func (s *stubProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.all {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProducts) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = "created"
	s.all = append(s.all, p)
	return &p, nil
}

func (s *stubProducts) Update(_ context.Context, id string, patch productrepo.Patch) error {
	for i := range s.all {
		if s.all[i].ID == id {
			if patch.Name != nil {
				s.all[i].Name = *patch.Name
			}
			if patch.PriceCents != nil {
				s.all[i].PriceCents = *patch.PriceCents
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubProducts) Delete(_ context.Context, id string) error {
	for i, p := range s.all {
		if p.ID == id {
			s.all = append(s.all[:i], s.all[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubProducts) DeleteByCategory(_ context.Context, categoryID string) error {
	kept := s.all[:0]
	for _, p := range s.all {
		if p.CategoryID != categoryID {
			kept = append(kept, p)
		}
	}
	s.all = kept
	return nil
}

func strPtr(v string) *string { return &v }

func TestDeleteCategoryCascadeDepth(t *testing.T) {
	// top category with two subcategories; P1 attached to top, P2 to S1
	cats := &stubCategories{all: []domain.Category{
		{ID: "top", Name: "Sushi"},
		{ID: "s1", Name: "Baked", ParentID: strPtr("top")},
		{ID: "s2", Name: "Tempura", ParentID: strPtr("top")},
	}}
	prods := &stubProducts{all: []domain.Product{
		{ID: "p1", Name: "In top", CategoryID: "top", IsActive: true},
		{ID: "p2", Name: "In sub", CategoryID: "s1", IsActive: true},
	}}
	svc := New(cats, prods)

	if err := svc.DeleteCategory(context.Background(), "top"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	if len(cats.all) != 0 {
		t.Fatalf("expected top, s1, s2 gone, still have %+v", cats.all)
	}
	// only products of the top-level id are cleaned; p2 is orphaned
	if len(prods.all) != 1 || prods.all[0].ID != "p2" {
		t.Fatalf("cascade depth wrong, products left: %+v", prods.all)
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	svc := New(&stubCategories{}, &stubProducts{})
	err := svc.DeleteCategory(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLeafCategories(t *testing.T) {
	cats := &stubCategories{all: []domain.Category{
		{ID: "top", Name: "Sushi"},
		{ID: "s1", Name: "Baked", ParentID: strPtr("top")},
		{ID: "hot", Name: "Hot Dishes"},
	}}
	svc := New(cats, &stubProducts{})

	leaves, err := svc.LeafCategories(context.Background())
	if err != nil {
		t.Fatalf("LeafCategories: %v", err)
	}
	if len(leaves) != 2 {
		t.Fatalf("expected s1 and hot, got %+v", leaves)
	}
	for _, c := range leaves {
		if c.ID == "top" {
			t.Fatalf("category with children listed as leaf")
		}
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	svc := New(&stubCategories{}, &stubProducts{})
	_, err := svc.CreateCategory(context.Background(), "   ", nil)
	if err == nil || err.Error() != "name required" {
		t.Fatalf("expected name validation error, got %v", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := New(&stubCategories{}, &stubProducts{})
	_, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "X", PriceCents: 0, CategoryID: "c"})
	if err == nil || err.Error() != "price must be positive" {
		t.Fatalf("expected price validation error, got %v", err)
	}
}
