package hybrid

import (
	"context"
	"reflect"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/infrastructure/persistence"
)

// entity is satisfied by a pointer to a storefront record
type entity[T any] interface {
	*T
	shared.Entity
}

// Memory is an in-process table used while the database is unreachable.
// It implements shared.Repository with linear scans. Rows are returned as
// shallow copies.
type Memory[T any, PT entity[T]] struct {
	mu    sync.RWMutex
	table string
	rows  []T
	index fieldIndex
	now   func() time.Time
}

// NewMemory creates a table seeded with a copy of seed
func NewMemory[T any, PT entity[T]](table string, seed []T) *Memory[T, PT] {
	return &Memory[T, PT]{
		table: table,
		rows:  slices.Clone(seed),
		index: indexOf(reflect.TypeFor[T]()),
		now:   time.Now,
	}
}

// List filters by equality, sorts by a json field and applies the limit.
// An empty sort means newest first.
func (m *Memory[T, PT]) List(_ context.Context, q shared.Query) ([]T, error) {
	for name := range q.Filters {
		if _, ok := m.index[name]; !ok {
			return nil, shared.NewValidationError("Unknown filter field: " + name)
		}
	}

	m.mu.RLock()
	out := make([]T, 0, len(m.rows))
	for _, row := range m.rows {
		if m.matches(row, q.Filters) {
			out = append(out, row)
		}
	}
	m.mu.RUnlock()

	field, desc := shared.ParseSort(q.Sort)
	if _, ok := m.index[field]; !ok {
		if field == "" {
			desc = true
		}
		field = "created_date"
	}
	if path, ok := m.index[field]; ok {
		slices.SortStableFunc(out, func(a, b T) int {
			c := compare(reflect.ValueOf(a).FieldByIndex(path), reflect.ValueOf(b).FieldByIndex(path))
			if desc {
				return -c
			}
			return c
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *Memory[T, PT]) matches(row T, filters map[string]any) bool {
	v := reflect.ValueOf(row)
	for name, want := range filters {
		field, _ := m.index.lookup(v, name)
		if !equal(field, want) {
			return false
		}
	}
	return true
}

// Get returns the row with the given ID
func (m *Memory[T, PT]) Get(_ context.Context, id string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.find(id); i >= 0 {
		row := m.rows[i]
		return &row, nil
	}
	return nil, shared.NewNotFoundError(persistence.ResourceName(m.table))
}

// Create appends the entity. Missing or duplicate IDs are replaced with
// "<table>_<unix millis>".
func (m *Memory[T, PT]) Create(_ context.Context, e *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := m.prepare(*e)
	m.rows = append(m.rows, row)
	return &row, nil
}

// Update replaces the row with the same ID and refreshes its updated date
func (m *Memory[T, PT]) Update(_ context.Context, e *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(PT(e).GetID())
	if i < 0 {
		return nil, shared.NewNotFoundError(persistence.ResourceName(m.table))
	}
	row := *e
	PT(&row).Stamp(m.createdDate(&m.rows[i]), m.now())
	m.rows[i] = row
	return &row, nil
}

// Delete removes the row with the given ID
func (m *Memory[T, PT]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return shared.NewNotFoundError(persistence.ResourceName(m.table))
	}
	m.rows = slices.Delete(m.rows, i, i+1)
	return nil
}

// BulkCreate appends every entity
func (m *Memory[T, PT]) BulkCreate(_ context.Context, es []T) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(es))
	for _, e := range es {
		row := m.prepare(e)
		m.rows = append(m.rows, row)
		out = append(out, row)
	}
	return out, nil
}

// Len returns the number of rows
func (m *Memory[T, PT]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}

// prepare assigns an ID when needed and stamps both dates. Callers hold the
// write lock.
func (m *Memory[T, PT]) prepare(row T) T {
	now := m.now()
	p := PT(&row)
	if id := p.GetID(); id == "" || m.find(id) >= 0 {
		p.SetID(m.nextID(now))
	}
	p.Stamp(now, now)
	return row
}

func (m *Memory[T, PT]) nextID(now time.Time) string {
	base := m.table + "_" + strconv.FormatInt(now.UnixMilli(), 10)
	id := base
	for n := 2; m.find(id) >= 0; n++ {
		id = base + "_" + strconv.Itoa(n)
	}
	return id
}

func (m *Memory[T, PT]) find(id string) int {
	for i := range m.rows {
		if PT(&m.rows[i]).GetID() == id {
			return i
		}
	}
	return -1
}

// createdDate reads the created_date of an existing row so updates keep it
func (m *Memory[T, PT]) createdDate(row *T) time.Time {
	f, ok := m.index.lookup(reflect.ValueOf(row).Elem(), "created_date")
	if !ok {
		return time.Time{}
	}
	t, _ := f.Interface().(time.Time)
	return t
}
