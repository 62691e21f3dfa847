// Package catalog serves the public catalog and the admin product, brand and
// category screens.
package catalog

import (
	"context"

	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(productRepo catalog.ProductRepository, events shared.EventPublisher, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{productRepo: productRepo, events: events, logger: logger}
}

// List returns every product, newest first
func (s *ProductService) List(ctx context.Context) ([]catalog.Product, error) {
	return s.productRepo.List(ctx, shared.NewQuery("-created_date", 0))
}

// Search applies the storefront filters to the product list
func (s *ProductService) Search(ctx context.Context, q catalog.ProductQuery) ([]catalog.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.FilterProducts(products, q), nil
}

// Featured returns featured products, newest first. limit <= 0 means all.
func (s *ProductService) Featured(ctx context.Context, limit int) ([]catalog.Product, error) {
	return s.productRepo.List(ctx, shared.NewQuery("-created_date", limit).Where("featured", true))
}

// GetBySlug returns the product shown on a detail page
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	products, err := s.productRepo.List(ctx, shared.NewQuery("", 1).Where("slug", slug))
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, shared.NewNotFoundError("Product")
	}
	return &products[0], nil
}

// GetByID returns a product by ID
func (s *ProductService) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	return s.productRepo.Get(ctx, id)
}

// Create adds a product. The slug must not be used by another product.
func (s *ProductService) Create(ctx context.Context, req ProductRequest, createdBy string) (*catalog.Product, error) {
	product, err := catalog.NewProduct(req.toInput(createdBy))
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, product.Slug, ""); err != nil {
		return nil, err
	}

	events := product.GetDomainEvents()
	product.ClearDomainEvents()
	saved, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)
	s.logger.Info("Product created", zap.String("product_id", saved.ID), zap.String("slug", saved.Slug))
	return saved, nil
}

// Update replaces a product's editable fields
func (s *ProductService) Update(ctx context.Context, id string, req ProductRequest) (*catalog.Product, error) {
	product, err := s.productRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.toInput(product.CreatedBy)); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, product.Slug, product.ID); err != nil {
		return nil, err
	}

	events := product.GetDomainEvents()
	product.ClearDomainEvents()
	saved, err := s.productRepo.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)
	return saved, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

func (s *ProductService) ensureSlugFree(ctx context.Context, slug, ownID string) error {
	existing, err := s.productRepo.List(ctx, shared.NewQuery("", 0).Where("slug", slug))
	if err != nil {
		return err
	}
	for _, p := range existing {
		if p.ID != ownID {
			return shared.NewDomainError("ALREADY_EXISTS", "A product with slug \""+slug+"\" already exists")
		}
	}
	return nil
}

func (s *ProductService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish product events", zap.Error(err))
	}
}
