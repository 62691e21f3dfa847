package catalog

import (
	"context"

	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListActive returns active categories in display order
func (s *CategoryService) ListActive(ctx context.Context) ([]catalog.Category, error) {
	return s.categoryRepo.List(ctx, shared.NewQuery("sort_order", 0).Where("active", true))
}

// List returns every category in display order
func (s *CategoryService) List(ctx context.Context) ([]catalog.Category, error) {
	return s.categoryRepo.List(ctx, shared.NewQuery("sort_order", 0))
}

// GetByID returns a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id string) (*catalog.Category, error) {
	return s.categoryRepo.Get(ctx, id)
}

// Create adds a category
func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (*catalog.Category, error) {
	category, err := catalog.NewCategory(req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, category.Slug, ""); err != nil {
		return nil, err
	}
	return s.categoryRepo.Create(ctx, category)
}

// Update replaces a category's editable fields
func (s *CategoryService) Update(ctx context.Context, id string, req CategoryRequest) (*catalog.Category, error) {
	category, err := s.categoryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.toInput()); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, category.Slug, category.ID); err != nil {
		return nil, err
	}
	return s.categoryRepo.Update(ctx, category)
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *CategoryService) ensureSlugFree(ctx context.Context, slug, ownID string) error {
	existing, err := s.categoryRepo.List(ctx, shared.NewQuery("", 0).Where("slug", slug))
	if err != nil {
		return err
	}
	for _, c := range existing {
		if c.ID != ownID {
			return shared.NewDomainError("ALREADY_EXISTS", "A category with slug \""+slug+"\" already exists")
		}
	}
	return nil
}
