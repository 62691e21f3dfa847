package persistence

import (
	"strings"
)

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

func columns(names ...string) map[string]bool {
	m := map[string]bool{
		"id":           true,
		"created_date": true,
		"updated_date": true,
	}
	for _, n := range names {
		m[n] = true
	}
	return m
}

// Columns each table accepts in filters and sort expressions. Names match
// the JSON field names of the domain types.
var (
	ProductColumns     = columns("name", "slug", "brand", "category", "featured", "created_by")
	BrandColumns       = columns("name", "slug", "origin_country", "active", "sort_order")
	CategoryColumns    = columns("name", "slug", "active", "sort_order")
	OrderColumns       = columns("dealer_email", "order_number", "status", "total_amount_npr")
	ShipmentColumns    = columns("tracking_number", "origin_country", "status", "eta_date", "port_name", "last_updated")
	UserColumns        = columns("email", "full_name", "role", "dealer_status", "business_name")
	ApplicationColumns = columns("email", "business_name", "status")
	SettingsColumns    = columns("company_name")
	PageVisitColumns   = map[string]bool{"id": true, "path": true, "page": true, "user_email": true, "created_date": true}
)
