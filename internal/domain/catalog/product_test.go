package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drillInput() ProductInput {
	return ProductInput{
		Name:     "FastDrill Professional Drill Machine",
		Brand:    "FastDrill",
		Category: "Power Tools",
		Images:   []string{"https://img/drill.jpg", " "},
		Variants: []ProductVariant{
			{Size: "13mm", Packaging: "Single Unit", EstimatedPriceNPR: decimal.NewFromInt(25000), StockStatus: StockInStock},
			{Size: "10mm", Packaging: "Single Unit", EstimatedPriceNPR: decimal.NewFromInt(15000), StockStatus: StockLowStock},
		},
	}
}

func TestNewProduct(t *testing.T) {
	t.Run("derives slug and variant ids", func(t *testing.T) {
		p, err := NewProduct(drillInput())
		require.NoError(t, err)

		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "fastdrill-professional-drill-machine", p.Slug)
		assert.Equal(t, []string{"https://img/drill.jpg"}, p.Images)
		assert.Equal(t, "fastdrill-professional-drill-machine-13mm-single-unit-0", p.Variants[0].ID)
		assert.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("keeps explicit slug", func(t *testing.T) {
		in := drillInput()
		in.Slug = "Drill Pro"
		p, err := NewProduct(in)
		require.NoError(t, err)
		assert.Equal(t, "drill-pro", p.Slug)
	})

	t.Run("requires name", func(t *testing.T) {
		in := drillInput()
		in.Name = "   "
		_, err := NewProduct(in)
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		in := drillInput()
		in.Variants[0].EstimatedPriceNPR = decimal.NewFromInt(-1)
		_, err := NewProduct(in)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	})

	t.Run("rejects unknown stock status", func(t *testing.T) {
		in := drillInput()
		in.Variants[1].StockStatus = "Backordered"
		_, err := NewProduct(in)
		assert.Error(t, err)
	})
}

func TestProduct_Queries(t *testing.T) {
	p, err := NewProduct(drillInput())
	require.NoError(t, err)

	assert.True(t, p.StartingPrice().Equal(decimal.NewFromInt(15000)))
	assert.True(t, p.HasStockStatus(StockLowStock))
	assert.False(t, p.HasStockStatus(StockPreOrder))
	assert.Equal(t, "https://img/drill.jpg", p.PrimaryImage())

	v, ok := p.Variant(p.Variants[1].ID)
	require.True(t, ok)
	assert.Equal(t, "10mm - Single Unit", v.Label())

	_, ok = p.Variant("missing")
	assert.False(t, ok)
}

func TestProduct_Update(t *testing.T) {
	p, err := NewProduct(drillInput())
	require.NoError(t, err)
	before := p.UpdatedDate
	time.Sleep(time.Millisecond)

	in := drillInput()
	in.Name = "FastDrill Impact Drill"
	in.Featured = true
	require.NoError(t, p.Update(in))

	assert.Equal(t, "fastdrill-impact-drill", p.Slug)
	assert.True(t, p.Featured)
	assert.True(t, p.UpdatedDate.After(before))
}

func TestVariantID(t *testing.T) {
	assert.Equal(t, "tool-kit-standard-unit-0", VariantID("tool-kit", "", "", 0))
	assert.Equal(t, "tool-kit-25-pieces-box-2", VariantID("tool-kit", "25 Pieces", "Box", 2))
}

func TestNewBrandAndCategory(t *testing.T) {
	b, err := NewBrand(BrandInput{Name: "Gorkha", OriginCountry: "India", EstablishedYear: 1975, Active: true})
	require.NoError(t, err)
	assert.Equal(t, "gorkha", b.Slug)

	_, err = NewBrand(BrandInput{})
	assert.Error(t, err)

	c, err := NewCategory(CategoryInput{Name: "Hand Tools", Color: "#EF4444", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "hand-tools", c.Slug)

	_, err = NewCategory(CategoryInput{Name: "Bad", Color: "red"})
	assert.Error(t, err)
}
