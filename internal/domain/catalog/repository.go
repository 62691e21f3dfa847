package catalog

import "github.com/jeenmata/impex/internal/domain/shared"

// Table names in the remote store
const (
	TableProducts   = "products"
	TableBrands     = "brands"
	TableCategories = "categories"
)

// ProductRepository persists products
type ProductRepository = shared.Repository[Product]

// BrandRepository persists brands
type BrandRepository = shared.Repository[Brand]

// CategoryRepository persists categories
type CategoryRepository = shared.Repository[Category]
