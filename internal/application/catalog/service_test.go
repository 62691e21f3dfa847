package catalog

import (
	"context"
	"testing"

	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/infrastructure/hybrid"
	"github.com/jeenmata/impex/internal/infrastructure/mockdata"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher is a testify mock of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func productStore() catalog.ProductRepository {
	return hybrid.New[catalog.Product](catalog.TableProducts, nil, mockdata.Products(), hybrid.Options{})
}

func brandStore() catalog.BrandRepository {
	return hybrid.New[catalog.Brand](catalog.TableBrands, nil, mockdata.Brands(), hybrid.Options{})
}

func drillRequest() ProductRequest {
	return ProductRequest{
		Name:     "Gorkha Claw Hammer",
		Brand:    "Gorkha",
		Category: "Hand Tools",
		Images:   []string{"https://cdn.example.com/hammer.jpg"},
		Variants: []VariantRequest{
			{Size: "16oz", Packaging: "Single", EstimatedPriceNPR: decimal.NewFromInt(900), StockStatus: "In Stock"},
		},
	}
}

func TestProductService_Queries(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(productStore(), nil, nil)

	t.Run("List returns newest first", func(t *testing.T) {
		products, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, "prod_001", products[0].ID)
		assert.Equal(t, "prod_002", products[2].ID)
	})

	t.Run("Search filters by brand and stock", func(t *testing.T) {
		products, err := svc.Search(ctx, catalog.ProductQuery{Brand: "Gorkha", StockStatus: "Pre-Order"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "prod_003", products[0].ID)
	})

	t.Run("Featured returns only featured products", func(t *testing.T) {
		products, err := svc.Featured(ctx, 0)
		require.NoError(t, err)
		require.Len(t, products, 2)
		for _, p := range products {
			assert.True(t, p.Featured)
		}
	})

	t.Run("GetBySlug", func(t *testing.T) {
		p, err := svc.GetBySlug(ctx, "spider-heavy-duty-angle-grinder")
		require.NoError(t, err)
		assert.Equal(t, "prod_002", p.ID)

		_, err = svc.GetBySlug(ctx, "missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("saves the product and publishes ProductCreated", func(t *testing.T) {
		events := new(MockEventPublisher)
		events.On("Publish", ctx, mock.MatchedBy(func(evts []shared.DomainEvent) bool {
			return len(evts) == 1 && evts[0].EventType() == catalog.EventTypeProductCreated
		})).Return(nil).Once()
		svc := NewProductService(productStore(), events, nil)

		p, err := svc.Create(ctx, drillRequest(), "admin@jeenmataimpex.com")
		require.NoError(t, err)
		assert.Equal(t, "gorkha-claw-hammer", p.Slug)
		assert.Equal(t, "admin@jeenmataimpex.com", p.CreatedBy)
		assert.Equal(t, "gorkha-claw-hammer-16oz-single-0", p.Variants[0].ID)
		assert.Empty(t, p.GetDomainEvents())

		found, err := svc.GetBySlug(ctx, "gorkha-claw-hammer")
		require.NoError(t, err)
		assert.Equal(t, p.ID, found.ID)
		events.AssertExpectations(t)
	})

	t.Run("rejects a duplicate slug", func(t *testing.T) {
		svc := NewProductService(productStore(), nil, nil)
		req := drillRequest()
		req.Slug = "gorkha-premium-tool-kit"

		_, err := svc.Create(ctx, req, "")
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		svc := NewProductService(productStore(), nil, nil)
		req := drillRequest()
		req.Variants[0].EstimatedPriceNPR = decimal.NewFromInt(-1)

		_, err := svc.Create(ctx, req, "")
		require.Error(t, err)
	})
}

func TestProductService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(productStore(), nil, nil)

	req := drillRequest()
	req.Name = "Spider Heavy Duty Angle Grinder"
	req.Slug = "spider-heavy-duty-angle-grinder"
	updated, err := svc.Update(ctx, "prod_002", req)
	require.NoError(t, err)
	assert.Equal(t, "prod_002", updated.ID, "keeping its own slug is allowed")
	assert.Equal(t, "Gorkha", updated.Brand)

	req.Slug = "gorkha-premium-tool-kit"
	_, err = svc.Update(ctx, "prod_002", req)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	require.NoError(t, svc.Delete(ctx, "prod_002"))
	_, err = svc.GetByID(ctx, "prod_002")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestBrandService(t *testing.T) {
	ctx := context.Background()
	svc := NewBrandService(brandStore(), productStore(), nil)

	t.Run("ListActive counts products per brand", func(t *testing.T) {
		brands, err := svc.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, brands, 3)
		assert.Equal(t, "FastDrill", brands[0].Name)
		assert.Equal(t, 1, brands[0].ProductCount)
	})

	t.Run("GetBySlug returns the brand products", func(t *testing.T) {
		detail, err := svc.GetBySlug(ctx, "gorkha")
		require.NoError(t, err)
		assert.Equal(t, "Gorkha", detail.Brand.Name)
		require.Len(t, detail.Products, 1)
		assert.Equal(t, "prod_003", detail.Products[0].ID)

		_, err = svc.GetBySlug(ctx, "makita")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("inactive brands are hidden from the public list", func(t *testing.T) {
		inactive := false
		b, err := svc.Create(ctx, BrandRequest{Name: "Himal Tools", Active: &inactive})
		require.NoError(t, err)
		assert.Equal(t, "himal-tools", b.Slug)

		active, err := svc.ListActive(ctx)
		require.NoError(t, err)
		assert.Len(t, active, 3)

		all, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	t.Run("rejects a duplicate slug", func(t *testing.T) {
		_, err := svc.Create(ctx, BrandRequest{Name: "Spider"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("Update and Delete", func(t *testing.T) {
		b, err := svc.Update(ctx, "brand_002", BrandRequest{Name: "Spider", Specialty: "Grinders", SortOrder: 9})
		require.NoError(t, err)
		assert.Equal(t, "Grinders", b.Specialty)
		assert.True(t, b.Active)

		require.NoError(t, svc.Delete(ctx, "brand_002"))
		_, err = svc.GetByID(ctx, "brand_002")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()
	store := hybrid.New[catalog.Category](catalog.TableCategories, nil, mockdata.Categories(), hybrid.Options{})
	svc := NewCategoryService(store)

	categories, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.LessOrEqual(t, categories[0].SortOrder, categories[1].SortOrder)

	c, err := svc.Create(ctx, CategoryRequest{Name: "Safety Gear", Color: "#EF4444"})
	require.NoError(t, err)
	assert.Equal(t, "safety-gear", c.Slug)

	_, err = svc.Create(ctx, CategoryRequest{Name: "Safety Gear"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = svc.Create(ctx, CategoryRequest{Name: "Paint", Color: "red"})
	require.Error(t, err)

	updated, err := svc.Update(ctx, c.ID, CategoryRequest{Name: "Safety Apparel"})
	require.NoError(t, err)
	assert.Equal(t, "safety-apparel", updated.Slug)

	require.NoError(t, svc.Delete(ctx, c.ID))
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
