package catalog

import (
	"testing"
	"time"

	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func sampleProducts() []Product {
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mk := func(name, brand, category string, day int, featured bool, stock ...StockStatus) Product {
		p := Product{Name: name, Brand: brand, Category: category, Featured: featured}
		p.BaseAggregateRoot = shared.BaseAggregateRoot{BaseEntity: shared.BaseEntity{ID: name, CreatedDate: base.AddDate(0, 0, day)}}
		for _, s := range stock {
			p.Variants = append(p.Variants, ProductVariant{StockStatus: s})
		}
		return p
	}
	return []Product{
		mk("Spider Angle Grinder", "Spider", "Power Tools", 1, false, StockInStock),
		mk("Gorkha Tool Kit", "Gorkha", "Hand Tools", 3, false, StockPreOrder),
		mk("FastDrill Drill", "FastDrill", "Power Tools", 2, true, StockInStock, StockLowStock),
	}
}

func names(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	featured := true
	tests := []struct {
		name  string
		query ProductQuery
		want  []string
	}{
		{"no filters keeps order", ProductQuery{}, []string{"Spider Angle Grinder", "Gorkha Tool Kit", "FastDrill Drill"}},
		{"search is case insensitive on brand", ProductQuery{Search: "gorkha"}, []string{"Gorkha Tool Kit"}},
		{"search matches name", ProductQuery{Search: "GRINDER"}, []string{"Spider Angle Grinder"}},
		{"brand filter", ProductQuery{Brand: "FastDrill"}, []string{"FastDrill Drill"}},
		{"All means no filter", ProductQuery{Brand: AllFilter, Category: AllFilter, StockStatus: AllFilter}, []string{"Spider Angle Grinder", "Gorkha Tool Kit", "FastDrill Drill"}},
		{"category filter sorted by name", ProductQuery{Category: "Power Tools", Sort: SortByName}, []string{"FastDrill Drill", "Spider Angle Grinder"}},
		{"any variant stock match", ProductQuery{StockStatus: "Low Stock"}, []string{"FastDrill Drill"}},
		{"featured", ProductQuery{Featured: &featured}, []string{"FastDrill Drill"}},
		{"sort by brand", ProductQuery{Sort: SortByBrand}, []string{"FastDrill Drill", "Gorkha Tool Kit", "Spider Angle Grinder"}},
		{"sort by newest", ProductQuery{Sort: SortByNewest}, []string{"Gorkha Tool Kit", "FastDrill Drill", "Spider Angle Grinder"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleProducts()
			got := FilterProducts(in, tt.query)
			assert.Equal(t, tt.want, names(got))
			assert.Equal(t, "Spider Angle Grinder", in[0].Name)
		})
	}
}

func TestCountByBrand(t *testing.T) {
	counts := CountByBrand(sampleProducts())
	assert.Equal(t, map[string]int{"Spider": 1, "Gorkha": 1, "FastDrill": 1}, counts)
}
