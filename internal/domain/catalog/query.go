package catalog

import (
	"sort"
	"strings"
)

// AllFilter is the value the storefront sends for "no filter"
const AllFilter = "All"

// ProductSort selects the ordering of catalog results
type ProductSort string

const (
	SortByName   ProductSort = "name"
	SortByBrand  ProductSort = "brand"
	SortByNewest ProductSort = "newest"
)

// ProductQuery is a storefront search over the product list
type ProductQuery struct {
	Search      string
	Brand       string
	Category    string
	StockStatus string
	Featured    *bool
	Sort        ProductSort
}

// FilterProducts applies q to products and returns a new slice.
// Search matches name, description and brand case-insensitively. The stock
// filter matches when any variant has the requested status.
func FilterProducts(products []Product, q ProductQuery) []Product {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) &&
			!strings.Contains(strings.ToLower(p.Brand), term) {
			continue
		}
		if active(q.Brand) && p.Brand != q.Brand {
			continue
		}
		if active(q.Category) && p.Category != q.Category {
			continue
		}
		if active(q.StockStatus) && !p.HasStockStatus(StockStatus(q.StockStatus)) {
			continue
		}
		if q.Featured != nil && p.Featured != *q.Featured {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortByBrand:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Brand) < strings.ToLower(out[j].Brand)
		})
	case SortByNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedDate.After(out[j].CreatedDate)
		})
	}
	return out
}

// CountByBrand returns the number of products per brand name
func CountByBrand(products []Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Brand]++
	}
	return counts
}

func active(filter string) bool {
	return filter != "" && filter != AllFilter
}
