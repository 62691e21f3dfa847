package catalog

import (
	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// VariantRequest is a product variant in a create or update request
type VariantRequest struct {
	ID                string          `json:"id" binding:"max=100"`
	Size              string          `json:"size" binding:"max=100"`
	Packaging         string          `json:"packaging" binding:"max=100"`
	EstimatedPriceNPR decimal.Decimal `json:"estimated_price_npr"`
	StockStatus       string          `json:"stock_status" binding:"required,oneof='In Stock' 'Low Stock' 'Out of Stock' 'Pre-Order'"`
}

// ProductRequest creates or replaces a product
type ProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Slug        string           `json:"slug" binding:"max=200"`
	Description string           `json:"description" binding:"max=5000"`
	Brand       string           `json:"brand" binding:"max=100"`
	Category    string           `json:"category" binding:"max=100"`
	Images      []string         `json:"images" binding:"max=20,dive,max=1000"`
	Variants    []VariantRequest `json:"variants" binding:"dive"`
	Featured    bool             `json:"featured"`
}

func (r ProductRequest) toInput(createdBy string) catalog.ProductInput {
	variants := make([]catalog.ProductVariant, 0, len(r.Variants))
	for _, v := range r.Variants {
		variants = append(variants, catalog.ProductVariant{
			ID:                v.ID,
			Size:              v.Size,
			Packaging:         v.Packaging,
			EstimatedPriceNPR: v.EstimatedPriceNPR,
			StockStatus:       catalog.StockStatus(v.StockStatus),
		})
	}
	return catalog.ProductInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Brand:       r.Brand,
		Category:    r.Category,
		Images:      r.Images,
		Variants:    variants,
		Featured:    r.Featured,
		CreatedBy:   createdBy,
	}
}

// ProductSearchRequest holds the storefront catalog filters from the query string
type ProductSearchRequest struct {
	Search      string `form:"search" binding:"max=200"`
	Brand       string `form:"brand"`
	Category    string `form:"category"`
	StockStatus string `form:"stock_status"`
	Featured    *bool  `form:"featured"`
	Sort        string `form:"sort" binding:"omitempty,oneof=name brand newest"`
}

// ToQuery converts the request into a catalog query
func (r ProductSearchRequest) ToQuery() catalog.ProductQuery {
	return catalog.ProductQuery{
		Search:      r.Search,
		Brand:       r.Brand,
		Category:    r.Category,
		StockStatus: r.StockStatus,
		Featured:    r.Featured,
		Sort:        catalog.ProductSort(r.Sort),
	}
}

// BrandRequest creates or replaces a brand
type BrandRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=100"`
	Slug            string `json:"slug" binding:"max=100"`
	Description     string `json:"description" binding:"max=2000"`
	Logo            string `json:"logo" binding:"max=1000"`
	OriginCountry   string `json:"origin_country" binding:"max=100"`
	EstablishedYear int    `json:"established_year" binding:"min=0,max=9999"`
	Specialty       string `json:"specialty" binding:"max=200"`
	Active          *bool  `json:"active"`
	SortOrder       int    `json:"sort_order"`
}

func (r BrandRequest) toInput() catalog.BrandInput {
	return catalog.BrandInput{
		Name:            r.Name,
		Slug:            r.Slug,
		Description:     r.Description,
		Logo:            r.Logo,
		OriginCountry:   r.OriginCountry,
		EstablishedYear: r.EstablishedYear,
		Specialty:       r.Specialty,
		Active:          r.Active == nil || *r.Active,
		SortOrder:       r.SortOrder,
	}
}

// CategoryRequest creates or replaces a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Slug        string `json:"slug" binding:"max=100"`
	Description string `json:"description" binding:"max=2000"`
	Icon        string `json:"icon" binding:"max=50"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	Active      *bool  `json:"active"`
	SortOrder   int    `json:"sort_order"`
}

func (r CategoryRequest) toInput() catalog.CategoryInput {
	return catalog.CategoryInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Icon:        r.Icon,
		Color:       r.Color,
		Active:      r.Active == nil || *r.Active,
		SortOrder:   r.SortOrder,
	}
}

// BrandWithCount is a brand with the number of products it has
type BrandWithCount struct {
	catalog.Brand
	ProductCount int `json:"product_count"`
}

// BrandDetail is a brand landing page: the brand and its products
type BrandDetail struct {
	Brand    catalog.Brand     `json:"brand"`
	Products []catalog.Product `json:"products"`
}
