//go:build integration

// Package integration runs the storefront stores against a real PostgreSQL
// started with testcontainers. Run with: go test -tags integration ./tests/...
package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jeenmata/impex/internal/infrastructure/config"
	"github.com/jeenmata/impex/internal/infrastructure/migration"
	"github.com/jeenmata/impex/internal/infrastructure/persistence"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// TestDB is a migrated database in a throwaway container
type TestDB struct {
	*persistence.Database
	DSN       string
	Container *tcpostgres.PostgresContainer
}

// NewTestDB starts postgres, applies the embedded migrations and returns a
// connection. The container is terminated when the test ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("impex_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrate(t, dsn)

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		URL:             dsn,
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5,
		ConnMaxIdleTime: 5,
		SlowThreshold:   time.Second,
	}, zap.NewNop(), "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &TestDB{Database: db, DSN: dsn, Container: container}
}

func migrate(t *testing.T, dsn string) {
	t.Helper()
	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()

	m, err := migration.New(sqlDB, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
}

// Truncate empties the given tables
func (tdb *TestDB) Truncate(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		require.NoError(t, tdb.DB.Exec("TRUNCATE TABLE "+table).Error)
	}
}
