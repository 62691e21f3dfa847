package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockStatus describes the availability of a product variant
type StockStatus string

const (
	StockInStock    StockStatus = "In Stock"
	StockLowStock   StockStatus = "Low Stock"
	StockOutOfStock StockStatus = "Out of Stock"
	StockPreOrder   StockStatus = "Pre-Order"
)

// StockStatuses lists every valid stock status in display order
var StockStatuses = []StockStatus{StockInStock, StockLowStock, StockOutOfStock, StockPreOrder}

// IsValid reports whether s is a known stock status
func (s StockStatus) IsValid() bool {
	for _, v := range StockStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ProductVariant is a purchasable size/packaging combination of a product
type ProductVariant struct {
	ID                string          `json:"id"`
	Size              string          `json:"size"`
	Packaging         string          `json:"packaging"`
	EstimatedPriceNPR decimal.Decimal `json:"estimated_price_npr"`
	StockStatus       StockStatus     `json:"stock_status"`
}

// Validate checks the variant's price and stock status
func (v ProductVariant) Validate() error {
	if v.EstimatedPriceNPR.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Variant price cannot be negative")
	}
	if !v.StockStatus.IsValid() {
		return shared.NewDomainError("INVALID_STOCK_STATUS", "Unknown stock status: "+string(v.StockStatus))
	}
	return nil
}

// Label renders the variant as "size - packaging"
func (v ProductVariant) Label() string {
	parts := make([]string, 0, 2)
	if v.Size != "" {
		parts = append(parts, v.Size)
	}
	if v.Packaging != "" {
		parts = append(parts, v.Packaging)
	}
	return strings.Join(parts, " - ")
}

// Product is a catalog item. Brand and category are referenced by name.
type Product struct {
	shared.BaseAggregateRoot
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Brand       string           `json:"brand"`
	Category    string           `json:"category"`
	Images      []string         `json:"images"`
	Variants    []ProductVariant `json:"variants"`
	Featured    bool             `json:"featured"`
	CreatedBy   string           `json:"created_by,omitempty"`
}

// ProductInput carries the editable fields of a product
type ProductInput struct {
	Name        string
	Slug        string
	Description string
	Brand       string
	Category    string
	Images      []string
	Variants    []ProductVariant
	Featured    bool
	CreatedBy   string
}

// NewProduct creates a new product. An empty slug is derived from the name.
func NewProduct(in ProductInput) (*Product, error) {
	p := &Product{BaseAggregateRoot: shared.NewBaseAggregateRoot(), CreatedBy: in.CreatedBy}
	if err := p.apply(in); err != nil {
		return nil, err
	}
	p.AddDomainEvent(NewProductEvent(EventTypeProductCreated, p))
	return p, nil
}

// Update replaces the product's editable fields
func (p *Product) Update(in ProductInput) error {
	if err := p.apply(in); err != nil {
		return err
	}
	p.Touch()
	p.AddDomainEvent(NewProductEvent(EventTypeProductUpdated, p))
	return nil
}

func (p *Product) apply(in ProductInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError("Product name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	slug := shared.Slugify(in.Slug)
	if slug == "" {
		slug = shared.Slugify(name)
	}
	if slug == "" {
		return shared.NewValidationError("Product slug cannot be empty")
	}
	for i := range in.Variants {
		if err := in.Variants[i].Validate(); err != nil {
			return err
		}
		if in.Variants[i].ID == "" {
			in.Variants[i].ID = VariantID(slug, in.Variants[i].Size, in.Variants[i].Packaging, i)
		}
	}

	p.Name = name
	p.Slug = slug
	p.Description = strings.TrimSpace(in.Description)
	p.Brand = strings.TrimSpace(in.Brand)
	p.Category = strings.TrimSpace(in.Category)
	p.Images = nonEmpty(in.Images)
	p.Variants = in.Variants
	p.Featured = in.Featured
	return nil
}

// Variant returns the variant with the given ID
func (p *Product) Variant(id string) (*ProductVariant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// HasStockStatus reports whether any variant has the given status
func (p *Product) HasStockStatus(s StockStatus) bool {
	for _, v := range p.Variants {
		if v.StockStatus == s {
			return true
		}
	}
	return false
}

// StartingPrice returns the lowest variant price, or zero without variants
func (p *Product) StartingPrice() decimal.Decimal {
	if len(p.Variants) == 0 {
		return decimal.Zero
	}
	lowest := p.Variants[0].EstimatedPriceNPR
	for _, v := range p.Variants[1:] {
		if v.EstimatedPriceNPR.LessThan(lowest) {
			lowest = v.EstimatedPriceNPR
		}
	}
	return lowest
}

// PrimaryImage returns the first image URL or ""
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// VariantID builds the deterministic variant ID used by imports:
// <slug>-<size|standard>-<packaging|unit>-<index>, normalized like a slug.
func VariantID(productSlug, size, packaging string, index int) string {
	if size == "" {
		size = "standard"
	}
	if packaging == "" {
		packaging = "unit"
	}
	raw := productSlug + "-" + size + "-" + packaging + "-" + strconv.Itoa(index)
	return shared.Slugify(raw)
}

// NewVariantID generates an ID for a variant added through the admin form
func NewVariantID(now time.Time) string {
	return "var_" + strconv.FormatInt(now.UnixMilli(), 10)
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
