package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jeenmata/impex/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultSortField = "created_date"
	batchSize        = 100
)

// model is satisfied by a pointer to a persistence model that converts to
// and from the domain type T.
type model[T any, M any] interface {
	*M
	ToDomain() *T
	FromDomain(*T)
}

// GormRepository implements shared.Repository for one table. Filters and
// sort fields are checked against the table's column whitelist.
type GormRepository[T any, M any, PM model[T, M]] struct {
	db      *gorm.DB
	table   string
	columns map[string]bool
}

// NewGormRepository creates a repository for the given table, e.g.
//
//	NewGormRepository[catalog.Product, models.ProductModel](db, catalog.TableProducts, ProductColumns)
func NewGormRepository[T any, M any, PM model[T, M]](db *gorm.DB, table string, columns map[string]bool) *GormRepository[T, M, PM] {
	return &GormRepository[T, M, PM]{db: db, table: table, columns: columns}
}

// RepositoryFor returns the table's repository on d, or nil when no
// database is connected
func RepositoryFor[T any, M any, PM model[T, M]](d *Database, table string, columns map[string]bool) shared.Repository[T] {
	if d == nil {
		return nil
	}
	return NewGormRepository[T, M, PM](d.DB, table, columns)
}

// Table returns the table this repository reads and writes
func (r *GormRepository[T, M, PM]) Table() string {
	return r.table
}

// List returns rows matching the query's equality filters, ordered and
// limited as requested. Without a sort the newest rows come first.
func (r *GormRepository[T, M, PM]) List(ctx context.Context, q shared.Query) ([]T, error) {
	tx := r.db.WithContext(ctx).Model(new(M))

	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !r.columns[k] {
			return nil, shared.NewValidationError("Unknown filter field: " + k)
		}
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: k}, Value: q.Filters[k]})
	}

	field, desc := shared.ParseSort(q.Sort)
	if field == "" {
		desc = true
	}
	field = ValidateSortField(field, r.columns, defaultSortField)
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: field}, Desc: desc})

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []M
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}

	out := make([]T, 0, len(rows))
	for i := range rows {
		out = append(out, *PM(&rows[i]).ToDomain())
	}
	return out, nil
}

// Get returns a single row by ID
func (r *GormRepository[T, M, PM]) Get(ctx context.Context, id string) (*T, error) {
	var row M
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(ResourceName(r.table))
		}
		return nil, fmt.Errorf("get %s: %w", r.table, err)
	}
	return PM(&row).ToDomain(), nil
}

// Create inserts a new row
func (r *GormRepository[T, M, PM]) Create(ctx context.Context, entity *T) (*T, error) {
	row := PM(new(M))
	row.FromDomain(entity)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", ResourceName(r.table)+" already exists")
		}
		return nil, fmt.Errorf("create %s: %w", r.table, err)
	}
	return row.ToDomain(), nil
}

// Update overwrites every column except created_date of the row with the
// entity's ID
func (r *GormRepository[T, M, PM]) Update(ctx context.Context, entity *T) (*T, error) {
	row := PM(new(M))
	row.FromDomain(entity)
	res := r.db.WithContext(ctx).Model(row).Select("*").Omit("id", "created_date").Updates(row)
	if res.Error != nil {
		return nil, fmt.Errorf("update %s: %w", r.table, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, shared.NewNotFoundError(ResourceName(r.table))
	}
	return row.ToDomain(), nil
}

// Delete removes a row by ID
func (r *GormRepository[T, M, PM]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(M))
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", r.table, res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.NewNotFoundError(ResourceName(r.table))
	}
	return nil
}

// BulkCreate inserts rows in batches of 100
func (r *GormRepository[T, M, PM]) BulkCreate(ctx context.Context, entities []T) ([]T, error) {
	if len(entities) == 0 {
		return []T{}, nil
	}
	rows := make([]M, len(entities))
	for i := range entities {
		PM(&rows[i]).FromDomain(&entities[i])
	}
	if err := r.db.WithContext(ctx).CreateInBatches(&rows, batchSize).Error; err != nil {
		return nil, fmt.Errorf("bulk create %s: %w", r.table, err)
	}
	out := make([]T, 0, len(rows))
	for i := range rows {
		out = append(out, *PM(&rows[i]).ToDomain())
	}
	return out, nil
}

// ResourceName names a table's rows in error messages, e.g. "Product" for
// "products"
func ResourceName(table string) string {
	name := table
	switch {
	case strings.HasSuffix(name, "ies"):
		name = strings.TrimSuffix(name, "ies") + "y"
	case strings.HasSuffix(name, "settings"):
	default:
		name = strings.TrimSuffix(name, "s")
	}
	name = strings.ReplaceAll(name, "_", " ")
	if name == "" {
		return "Record"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// IsMissingTable reports whether err means the table has not been created
// yet, either on postgres (SQLSTATE 42P01) or sqlite.
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}
	msg := err.Error()
	return strings.Contains(msg, "no such table") ||
		(strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
