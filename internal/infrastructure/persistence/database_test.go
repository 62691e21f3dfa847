package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteDatabase(t *testing.T) *Database {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	d := &Database{DB: db}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestDatabase_PingAndStats(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
	}{
		{name: "healthy connection"},
		{name: "ping fails", pingErr: errors.New("connection reset by peer")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)

			// gorm pings on open unless told otherwise, and sqlmock rejects unexpected pings
			gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
				DisableAutomaticPing: true,
				Logger:               logger.Default.LogMode(logger.Silent),
			})
			require.NoError(t, err)
			d := &Database{DB: gormDB}

			mock.ExpectPing().WillReturnError(tt.pingErr)
			if tt.pingErr != nil {
				assert.ErrorIs(t, d.Ping(), tt.pingErr)
			} else {
				assert.NoError(t, d.Ping())
			}

			stats, err := d.Stats()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, stats.OpenConnections, 0)

			mock.ExpectClose()
			assert.NoError(t, d.Close())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDatabase_AutoMigrateAndRoundTrip(t *testing.T) {
	d := newSQLiteDatabase(t)
	require.NoError(t, d.AutoMigrate())

	for _, m := range models.All() {
		assert.True(t, d.DB.Migrator().HasTable(m))
	}

	repo := NewGormRepository[catalog.Brand, models.BrandModel](d.DB, catalog.TableBrands, BrandColumns)
	ctx := context.Background()

	b, err := catalog.NewBrand(catalog.BrandInput{Name: "Gorkha", OriginCountry: "China", Active: false})
	require.NoError(t, err)
	_, err = repo.Create(ctx, b)
	require.NoError(t, err)

	got, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "gorkha", got.Slug)
	assert.False(t, got.Active)

	list, err := repo.List(ctx, shared.Query{}.Where("origin_country", "China"))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got.Specialty = "Hand tools"
	_, err = repo.Update(ctx, got)
	require.NoError(t, err)

	again, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hand tools", again.Specialty)
	assert.Equal(t, b.CreatedDate.Unix(), again.CreatedDate.Unix())

	require.NoError(t, repo.Delete(ctx, b.ID))
	_, err = repo.Get(ctx, b.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestIsMissingTable_SQLite(t *testing.T) {
	d := newSQLiteDatabase(t)
	repo := NewGormRepository[catalog.Category, models.CategoryModel](d.DB, catalog.TableCategories, CategoryColumns)

	_, err := repo.List(context.Background(), shared.Query{})

	require.Error(t, err)
	assert.True(t, IsMissingTable(err))
}
