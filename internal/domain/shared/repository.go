package shared

import (
	"context"
	"strings"
)

// Query describes a table read: equality filters on columns, an optional
// sort field and an optional row limit.
type Query struct {
	Filters map[string]any
	// Sort names a column. A leading "-" sorts descending, e.g. "-created_date".
	Sort  string
	Limit int
}

// NewQuery creates a query with the given sort and limit and no filters
func NewQuery(sort string, limit int) Query {
	return Query{Sort: sort, Limit: limit}
}

// Where returns a copy of the query with an additional equality filter
func (q Query) Where(field string, value any) Query {
	filters := make(map[string]any, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters[field] = value
	q.Filters = filters
	return q
}

// ParseSort splits a sort expression into the field name and direction
func ParseSort(sort string) (field string, desc bool) {
	sort = strings.TrimSpace(sort)
	if strings.HasPrefix(sort, "-") {
		return strings.TrimPrefix(sort, "-"), true
	}
	return sort, false
}

// Repository is the data access contract every entity table exposes.
// Implementations may be remote (database) or local (in-memory).
type Repository[T any] interface {
	// List returns rows matching the query
	List(ctx context.Context, q Query) ([]T, error)
	// Get returns a single row by ID
	Get(ctx context.Context, id string) (*T, error)
	// Create inserts a new row and returns the stored version
	Create(ctx context.Context, entity *T) (*T, error)
	// Update replaces the row with the same ID
	Update(ctx context.Context, entity *T) (*T, error)
	// Delete removes a row by ID
	Delete(ctx context.Context, id string) error
	// BulkCreate inserts several rows at once
	BulkCreate(ctx context.Context, entities []T) ([]T, error)
}
