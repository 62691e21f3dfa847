package handler

import (
	"net/http"
	"testing"

	catalogapp "github.com/jeenmata/impex/internal/application/catalog"
	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_Search(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name      string
		query     string
		wantSlugs []string
	}{
		{"no filters", "", []string{
			"fastdrill-professional-18v-cordless-drill",
			"spider-heavy-duty-angle-grinder",
			"gorkha-premium-tool-kit",
		}},
		{"search term", "?search=drill", []string{"fastdrill-professional-18v-cordless-drill"}},
		{"category filter", "?category=Hand%20Tools", []string{"gorkha-premium-tool-kit"}},
		{"all means no filter", "?brand=all&category=all", []string{
			"fastdrill-professional-18v-cordless-drill",
			"spider-heavy-duty-angle-grinder",
			"gorkha-premium-tool-kit",
		}},
		{"sorted by name", "?sort=name", []string{
			"fastdrill-professional-18v-cordless-drill",
			"gorkha-premium-tool-kit",
			"spider-heavy-duty-angle-grinder",
		}},
		{"stock status", "?stock_status=Pre-Order", []string{"gorkha-premium-tool-kit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodGet, "/api/v1/catalog/products"+tt.query, "", nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var products []catalog.Product
			resp := decode(t, rec, &products)
			assert.True(t, resp.Success)
			require.NotNil(t, resp.Meta)
			assert.Equal(t, len(tt.wantSlugs), resp.Meta.Total)

			slugs := make([]string, 0, len(products))
			for _, p := range products {
				slugs = append(slugs, p.Slug)
			}
			if tt.query == "?sort=name" {
				assert.Equal(t, tt.wantSlugs, slugs)
			} else {
				assert.ElementsMatch(t, tt.wantSlugs, slugs)
			}
		})
	}

	t.Run("unknown sort is rejected", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/catalog/products?sort=price", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeValidation, errorCode(t, rec))
	})
}

func TestProductHandler_GetBySlug(t *testing.T) {
	app := newTestApp(t)

	t.Run("found", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/catalog/products/gorkha-premium-tool-kit", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var p catalog.Product
		decode(t, rec, &p)
		assert.Equal(t, "prod_003", p.ID)
		assert.Len(t, p.Variants, 2)
	})

	t.Run("unknown slug", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/catalog/products/no-such-product", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, dto.ErrCodeNotFound, errorCode(t, rec))
	})
}

func TestProductHandler_Featured(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/v1/catalog/featured?limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []catalog.Product
	decode(t, rec, &products)
	require.Len(t, products, 1)
	assert.True(t, products[0].Featured)

	rec = app.do(t, http.MethodGet, "/api/v1/catalog/featured?limit=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBrandHandler_GetBySlug(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/v1/catalog/brands/fastdrill", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail catalogapp.BrandDetail
	decode(t, rec, &detail)
	assert.Equal(t, "FastDrill", detail.Brand.Name)
	require.Len(t, detail.Products, 1)
	assert.Equal(t, "prod_001", detail.Products[0].ID)
}

func TestProductHandler_AdminCreateAndDelete(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)

	body := map[string]any{
		"name":     "Spider Impact Driver",
		"brand":    "Spider",
		"category": "Power Tools",
		"variants": []map[string]any{
			{"size": "12V", "packaging": "Tool Only", "estimated_price_npr": "9500", "stock_status": "In Stock"},
		},
	}

	t.Run("dealers cannot create products", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/v1/admin/products", app.dealerToken(t), body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, dto.ErrCodeForbidden, errorCode(t, rec))
	})

	rec := app.do(t, http.MethodPost, "/api/v1/admin/products", admin, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created catalog.Product
	decode(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "spider-impact-driver", created.Slug)
	assert.Equal(t, "admin@jeenmataimpex.com", created.CreatedBy)

	rec = app.do(t, http.MethodGet, "/api/v1/catalog/products/spider-impact-driver", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/v1/admin/products", admin, body)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, errorCode(t, rec))
	})

	rec = app.do(t, http.MethodDelete, "/api/v1/admin/products/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/catalog/products/spider-impact-driver", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
