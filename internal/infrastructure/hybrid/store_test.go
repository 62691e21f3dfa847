package hybrid

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/infrastructure/persistence"
	"github.com/jeenmata/impex/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubRemote answers every call with err, or from rows when err is nil
type stubRemote struct {
	err   error
	rows  []catalog.Brand
	calls int
}

func (s *stubRemote) List(context.Context, shared.Query) ([]catalog.Brand, error) {
	s.calls++
	return s.rows, s.err
}

func (s *stubRemote) Get(_ context.Context, id string) (*catalog.Brand, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	for _, r := range s.rows {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, shared.NewNotFoundError("Brand")
}

func (s *stubRemote) Create(_ context.Context, e *catalog.Brand) (*catalog.Brand, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return e, nil
}

func (s *stubRemote) Update(_ context.Context, e *catalog.Brand) (*catalog.Brand, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return e, nil
}

func (s *stubRemote) Delete(context.Context, string) error {
	s.calls++
	return s.err
}

func (s *stubRemote) BulkCreate(_ context.Context, es []catalog.Brand) ([]catalog.Brand, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return es, nil
}

type recordingObserver struct {
	mu        sync.Mutex
	fallbacks []string
	states    []int
}

func (r *recordingObserver) Fallback(table, op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks = append(r.fallbacks, table+":"+op)
}

func (r *recordingObserver) BreakerState(_ string, state int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return zap.New(core), logs
}

func TestStore_UnconfiguredRemoteServesSeed(t *testing.T) {
	l, logs := newObservedLogger()
	obs := &recordingObserver{}
	s := New[catalog.Brand](catalog.TableBrands, nil, seedBrands(), Options{Logger: l, Observer: obs})

	rows, err := s.List(context.Background(), shared.Query{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.False(t, s.Remote())
	assert.Equal(t, catalog.TableBrands, s.Table())

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Using mock data for brands - database not ready", entry.Message)
	assert.Equal(t, "list", entry.ContextMap()["operation"])
	assert.Equal(t, []string{"brands:list"}, obs.fallbacks)
}

func TestStore_RemoteFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	remote := &stubRemote{err: errors.New("connection refused")}
	l, logs := newObservedLogger()
	s := New[catalog.Brand](catalog.TableBrands, remote, seedBrands(), Options{Logger: l})

	got, err := s.Get(ctx, "brand_1")
	require.NoError(t, err)
	assert.Equal(t, "Makita", got.Name)

	created, err := s.Create(ctx, &catalog.Brand{Name: "Dewalt"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "brands_"))

	assert.Equal(t, 2, remote.calls)
	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, "connection refused", logs.All()[0].ContextMap()["error"])
}

func TestStore_FallbackPerOperation(t *testing.T) {
	tests := []struct {
		name string
		op   string
		run  func(t *testing.T, ctx context.Context, s *Store[catalog.Brand, *catalog.Brand])
	}{
		{
			name: "list applies filters sort and limit to seed",
			op:   "list",
			run: func(t *testing.T, ctx context.Context, s *Store[catalog.Brand, *catalog.Brand]) {
				rows, err := s.List(ctx, shared.NewQuery("sort_order", 1).Where("active", true))
				require.NoError(t, err)
				assert.Equal(t, []string{"brand_2"}, ids(rows))
			},
		},
		{
			name: "get reads seed",
			op:   "get",
			run: func(t *testing.T, ctx context.Context, s *Store[catalog.Brand, *catalog.Brand]) {
				got, err := s.Get(ctx, "brand_3")
				require.NoError(t, err)
				assert.Equal(t, "Stanley", got.Name)
			},
		},
		{
			name: "create stamps id and dates in memory",
			op:   "create",
			run: func(t *testing.T, ctx context.Context, s *Store[catalog.Brand, *catalog.Brand]) {
				created, err := s.Create(ctx, &catalog.Brand{Name: "Dewalt"})
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(created.ID, "brands_"))
				assert.False(t, created.CreatedDate.IsZero())
			},
		},
		{
			name: "update rewrites the seeded row",
			op:   "update",
			run: func(t *testing.T, ctx context.Context, s *Store[catalog.Brand, *catalog.Brand]) {
				row := brand("brand_1", "Makita Pro", true, 2, time.Time{})
				updated, err := s.Update(ctx, &row)
				require.NoError(t, err)
				assert.Equal(t, "Makita Pro", updated.Name)
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), updated.CreatedDate)
			},
		},
		{
			name: "delete removes the seeded row",
			op:   "delete",
			run: func(t *testing.T, ctx context.Context, s *Store[catalog.Brand, *catalog.Brand]) {
				require.NoError(t, s.Delete(ctx, "brand_3"))
			},
		},
		{
			name: "bulk create appends to seed",
			op:   "bulk_create",
			run: func(t *testing.T, ctx context.Context, s *Store[catalog.Brand, *catalog.Brand]) {
				rows, err := s.BulkCreate(ctx, []catalog.Brand{{Name: "Hilti"}, {Name: "Ingco"}})
				require.NoError(t, err)
				require.Len(t, rows, 2)
				for _, r := range rows {
					assert.NotEmpty(t, r.ID)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &stubRemote{err: errors.New("connection refused")}
			obs := &recordingObserver{}
			l, logs := newObservedLogger()
			s := New[catalog.Brand](catalog.TableBrands, remote, seedBrands(), Options{Logger: l, Observer: obs})

			tt.run(t, context.Background(), s)

			assert.Equal(t, 1, remote.calls)
			assert.Equal(t, []string{catalog.TableBrands + ":" + tt.op}, obs.fallbacks)
			require.Equal(t, 1, logs.Len())
			fields := logs.All()[0].ContextMap()
			assert.Equal(t, tt.op, fields["operation"])
			assert.Equal(t, "connection refused", fields["error"])
		})
	}
}

func TestStore_DomainErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	remote := &stubRemote{rows: []catalog.Brand{brand("remote_1", "Remote", true, 0, time.Now())}}
	obs := &recordingObserver{}
	s := New[catalog.Brand](catalog.TableBrands, remote, seedBrands(), Options{Observer: obs})

	_, err := s.Get(ctx, "brand_1")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	got, err := s.Get(ctx, "remote_1")
	require.NoError(t, err)
	assert.Equal(t, "Remote", got.Name)

	remote.err = shared.NewDomainError("ALREADY_EXISTS", "Brand already exists")
	_, err = s.Create(ctx, &catalog.Brand{Name: "Dup"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	assert.Empty(t, obs.fallbacks)
	assert.True(t, s.Remote())
}

func TestStore_BreakerOpensAfterThreshold(t *testing.T) {
	ctx := context.Background()
	remote := &stubRemote{err: errors.New("timeout")}
	obs := &recordingObserver{}
	s := New[catalog.Brand](catalog.TableBrands, remote, seedBrands(), Options{
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		Observer:         obs,
	})

	for i := 0; i < 5; i++ {
		rows, err := s.List(ctx, shared.Query{})
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	}

	assert.Equal(t, 2, remote.calls, "breaker should stop remote calls once open")
	assert.False(t, s.Remote())
	assert.Len(t, obs.fallbacks, 5)
	assert.NotEmpty(t, obs.states)
}

func TestStore_QueryTimeout(t *testing.T) {
	remote := &blockingRemote{}
	s := New[catalog.Brand](catalog.TableBrands, remote, seedBrands(), Options{QueryTimeout: 10 * time.Millisecond})

	rows, err := s.List(context.Background(), shared.Query{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

// blockingRemote waits for the context deadline on List
type blockingRemote struct{ stubRemote }

func (b *blockingRemote) List(ctx context.Context, _ shared.Query) ([]catalog.Brand, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestStore_SQLiteRemote(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	remote := persistence.NewGormRepository[catalog.Brand, models.BrandModel](db, catalog.TableBrands, persistence.BrandColumns)
	l, logs := newObservedLogger()
	s := New[catalog.Brand](catalog.TableBrands, remote, seedBrands(), Options{Logger: l})

	t.Run("missing table falls back to seed", func(t *testing.T) {
		rows, err := s.List(ctx, shared.Query{})
		require.NoError(t, err)
		assert.Len(t, rows, 3)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "table does not exist", logs.All()[0].ContextMap()["reason"])
	})

	t.Run("migrated table is served remotely", func(t *testing.T) {
		require.NoError(t, db.AutoMigrate(&models.BrandModel{}))

		b, err := catalog.NewBrand(catalog.BrandInput{Name: "Hilti", Active: true})
		require.NoError(t, err)
		created, err := s.Create(ctx, b)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedDate.IsZero())

		rows, err := s.List(ctx, shared.Query{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Hilti", rows[0].Name)
		assert.Equal(t, created.ID, rows[0].ID)
	})
}
