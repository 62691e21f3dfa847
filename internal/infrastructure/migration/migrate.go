// Package migration applies the storefront schema to PostgreSQL with
// golang-migrate. The SQL files ship inside the binary; a directory on disk
// can be used instead while writing new migrations.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var embedded embed.FS

// Embedded returns the migrations compiled into the binary
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrator runs schema migrations
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

type options struct {
	dir string
}

// Option configures a Migrator
type Option func(*options)

// WithDir reads migrations from a directory instead of the embedded set
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

func sourceDriver(opts []Option) (source.Driver, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	fsys := Embedded()
	if o.dir != "" {
		fsys = os.DirFS(o.dir)
	}
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}
	return src, nil
}

// New creates a Migrator on an open connection
func New(db *sql.DB, logger *zap.Logger, opts ...Option) (*Migrator, error) {
	src, err := sourceDriver(opts)
	if err != nil {
		return nil, err
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return &Migrator{migrate: m, logger: logger}, nil
}

// NewFromURL creates a Migrator that opens its own connection
func NewFromURL(databaseURL string, logger *zap.Logger, opts ...Option) (*Migrator, error) {
	src, err := sourceDriver(opts)
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return &Migrator{migrate: m, logger: logger}, nil
}

// run executes op and logs the resulting version. ErrNoChange is not an
// error.
func (m *Migrator) run(name string, op func() error) error {
	err := op()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Schema already up to date", zap.String("operation", name))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", name, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("Migration finished",
		zap.String("operation", name),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	return m.run("up", m.migrate.Up)
}

// Down rolls back every migration
func (m *Migrator) Down() error {
	return m.run("down", m.migrate.Down)
}

// Steps applies n migrations, rolling back when n is negative
func (m *Migrator) Steps(n int) error {
	return m.run(fmt.Sprintf("steps %d", n), func() error { return m.migrate.Steps(n) })
}

// GoTo migrates up or down to version
func (m *Migrator) GoTo(version uint) error {
	return m.run(fmt.Sprintf("goto %d", version), func() error { return m.migrate.Migrate(version) })
}

// Version returns the applied version. A fresh database reports 0.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied without running anything. It is the
// way out of a dirty state after a failed migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every table in the database
func (m *Migrator) Drop() error {
	m.logger.Warn("Dropping all tables")
	if err := m.migrate.Drop(); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	return nil
}

// Close releases the source and the database connection
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	return errors.Join(sourceErr, dbErr)
}
