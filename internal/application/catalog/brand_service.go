package catalog

import (
	"context"

	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/shared"
	"go.uber.org/zap"
)

// BrandService handles brand-related business operations
type BrandService struct {
	brandRepo   catalog.BrandRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewBrandService creates a new BrandService
func NewBrandService(brandRepo catalog.BrandRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *BrandService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrandService{brandRepo: brandRepo, productRepo: productRepo, logger: logger}
}

// ListActive returns active brands in display order with their product counts
func (s *BrandService) ListActive(ctx context.Context) ([]BrandWithCount, error) {
	brands, err := s.brandRepo.List(ctx, shared.NewQuery("sort_order", 0).Where("active", true))
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.List(ctx, shared.NewQuery("", 0))
	if err != nil {
		return nil, err
	}
	counts := catalog.CountByBrand(products)

	out := make([]BrandWithCount, 0, len(brands))
	for _, b := range brands {
		out = append(out, BrandWithCount{Brand: b, ProductCount: counts[b.Name]})
	}
	return out, nil
}

// List returns every brand in display order
func (s *BrandService) List(ctx context.Context) ([]catalog.Brand, error) {
	return s.brandRepo.List(ctx, shared.NewQuery("sort_order", 0))
}

// GetBySlug returns a brand and its products, newest first
func (s *BrandService) GetBySlug(ctx context.Context, slug string) (*BrandDetail, error) {
	brands, err := s.brandRepo.List(ctx, shared.NewQuery("", 1).Where("slug", slug))
	if err != nil {
		return nil, err
	}
	if len(brands) == 0 {
		return nil, shared.NewNotFoundError("Brand")
	}
	products, err := s.productRepo.List(ctx, shared.NewQuery("-created_date", 0).Where("brand", brands[0].Name))
	if err != nil {
		return nil, err
	}
	return &BrandDetail{Brand: brands[0], Products: products}, nil
}

// GetByID returns a brand by ID
func (s *BrandService) GetByID(ctx context.Context, id string) (*catalog.Brand, error) {
	return s.brandRepo.Get(ctx, id)
}

// Create adds a brand
func (s *BrandService) Create(ctx context.Context, req BrandRequest) (*catalog.Brand, error) {
	brand, err := catalog.NewBrand(req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, brand.Slug, ""); err != nil {
		return nil, err
	}
	saved, err := s.brandRepo.Create(ctx, brand)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Brand created", zap.String("brand_id", saved.ID), zap.String("slug", saved.Slug))
	return saved, nil
}

// Update replaces a brand's editable fields
func (s *BrandService) Update(ctx context.Context, id string, req BrandRequest) (*catalog.Brand, error) {
	brand, err := s.brandRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := brand.Update(req.toInput()); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, brand.Slug, brand.ID); err != nil {
		return nil, err
	}
	return s.brandRepo.Update(ctx, brand)
}

// Delete removes a brand. Products keep the brand name they were saved with.
func (s *BrandService) Delete(ctx context.Context, id string) error {
	return s.brandRepo.Delete(ctx, id)
}

func (s *BrandService) ensureSlugFree(ctx context.Context, slug, ownID string) error {
	existing, err := s.brandRepo.List(ctx, shared.NewQuery("", 0).Where("slug", slug))
	if err != nil {
		return err
	}
	for _, b := range existing {
		if b.ID != ownID {
			return shared.NewDomainError("ALREADY_EXISTS", "A brand with slug \""+slug+"\" already exists")
		}
	}
	return nil
}
