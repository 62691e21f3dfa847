// Package hybrid serves each storefront table from the database when it is
// reachable and from in-memory sample data when it is not.
package hybrid

import (
	"context"
	"errors"
	"time"

	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/infrastructure/logger"
	"github.com/jeenmata/impex/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// ErrRemoteNotConfigured is returned internally when no database is set up
var ErrRemoteNotConfigured = errors.New("remote store not configured")

// Observer is told about fallbacks and circuit breaker transitions
type Observer interface {
	Fallback(table, operation string)
	BreakerState(table string, state int)
}

type nopObserver struct{}

func (nopObserver) Fallback(string, string)  {}
func (nopObserver) BreakerState(string, int) {}

// Options tune a Store. Zero values are replaced with defaults.
type Options struct {
	// FailureThreshold is the number of consecutive failures that opens the breaker
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before a trial call
	OpenTimeout time.Duration
	// QueryTimeout bounds each remote call
	QueryTimeout time.Duration
	Observer     Observer
	Logger       *zap.Logger
}

func (o *Options) defaults() {
	if o.FailureThreshold == 0 {
		o.FailureThreshold = 5
	}
	if o.OpenTimeout == 0 {
		o.OpenTimeout = 30 * time.Second
	}
	if o.QueryTimeout == 0 {
		o.QueryTimeout = 5 * time.Second
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Store implements shared.Repository over a remote repository with an
// in-memory fallback. Domain errors from the remote (not found, validation,
// duplicates) are returned as they are; any other failure, an open breaker
// or a missing remote sends the call to memory.
type Store[T any, PT entity[T]] struct {
	table   string
	remote  shared.Repository[T]
	memory  *Memory[T, PT]
	breaker *gobreaker.CircuitBreaker[any]
	opts    Options
}

// New creates a store for table. remote may be nil, in which case every
// call is served from seed data.
func New[T any, PT entity[T]](table string, remote shared.Repository[T], seed []T, opts Options) *Store[T, PT] {
	opts.defaults()
	s := &Store[T, PT]{
		table:  table,
		remote: remote,
		memory: NewMemory[T, PT](table, seed),
		opts:   opts,
	}
	s.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        table,
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= opts.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isDomainError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			opts.Logger.Warn("Database circuit breaker state changed",
				zap.String("table", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			opts.Observer.BreakerState(name, int(to))
		},
	})
	return s
}

// Table returns the table name
func (s *Store[T, PT]) Table() string {
	return s.table
}

// Remote reports whether calls currently reach the database
func (s *Store[T, PT]) Remote() bool {
	return s.remote != nil && s.breaker.State() != gobreaker.StateOpen
}

// List implements shared.Repository
func (s *Store[T, PT]) List(ctx context.Context, q shared.Query) ([]T, error) {
	rows, err := call(ctx, s, func(ctx context.Context) ([]T, error) {
		return s.remote.List(ctx, q)
	})
	if !s.shouldFallBack(ctx, "list", err) {
		return rows, err
	}
	return s.memory.List(ctx, q)
}

// Get implements shared.Repository
func (s *Store[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	row, err := call(ctx, s, func(ctx context.Context) (*T, error) {
		return s.remote.Get(ctx, id)
	})
	if !s.shouldFallBack(ctx, "get", err) {
		return row, err
	}
	return s.memory.Get(ctx, id)
}

// Create implements shared.Repository
func (s *Store[T, PT]) Create(ctx context.Context, e *T) (*T, error) {
	row, err := call(ctx, s, func(ctx context.Context) (*T, error) {
		return s.remote.Create(ctx, s.stampNew(*e))
	})
	if !s.shouldFallBack(ctx, "create", err) {
		return row, err
	}
	return s.memory.Create(ctx, e)
}

// Update implements shared.Repository
func (s *Store[T, PT]) Update(ctx context.Context, e *T) (*T, error) {
	row, err := call(ctx, s, func(ctx context.Context) (*T, error) {
		row := *e
		PT(&row).Stamp(s.memory.createdDate(&row), s.memory.now())
		return s.remote.Update(ctx, &row)
	})
	if !s.shouldFallBack(ctx, "update", err) {
		return row, err
	}
	return s.memory.Update(ctx, e)
}

// Delete implements shared.Repository
func (s *Store[T, PT]) Delete(ctx context.Context, id string) error {
	_, err := call(ctx, s, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.remote.Delete(ctx, id)
	})
	if !s.shouldFallBack(ctx, "delete", err) {
		return err
	}
	return s.memory.Delete(ctx, id)
}

// BulkCreate implements shared.Repository
func (s *Store[T, PT]) BulkCreate(ctx context.Context, es []T) ([]T, error) {
	rows, err := call(ctx, s, func(ctx context.Context) ([]T, error) {
		rows := make([]T, len(es))
		for i := range es {
			rows[i] = *s.stampNew(es[i])
		}
		return s.remote.BulkCreate(ctx, rows)
	})
	if !s.shouldFallBack(ctx, "bulk_create", err) {
		return rows, err
	}
	return s.memory.BulkCreate(ctx, es)
}

// stampNew gives a row bound for the database an ID and both dates. The
// caller's value is left untouched so a fallback starts from the original.
func (s *Store[T, PT]) stampNew(row T) *T {
	p := PT(&row)
	if p.GetID() == "" {
		p.SetID(uuid.NewString())
	}
	now := s.memory.now()
	p.Stamp(now, now)
	return &row
}

// call runs fn against the remote through the breaker with a deadline
func call[R any, T any, PT entity[T]](ctx context.Context, s *Store[T, PT], fn func(context.Context) (R, error)) (R, error) {
	var zero R
	if s.remote == nil {
		return zero, ErrRemoteNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()

	res, err := s.breaker.Execute(func() (any, error) {
		return fn(ctx)
	})
	if res == nil {
		return zero, err
	}
	return res.(R), err
}

// shouldFallBack logs and counts a fallback when err is an infrastructure
// failure
func (s *Store[T, PT]) shouldFallBack(ctx context.Context, op string, err error) bool {
	if err == nil || isDomainError(err) {
		return false
	}

	fields := []zap.Field{zap.String("table", s.table), zap.String("operation", op)}
	switch {
	case errors.Is(err, ErrRemoteNotConfigured):
	case persistence.IsMissingTable(err):
		fields = append(fields, zap.String("reason", "table does not exist"))
	default:
		fields = append(fields, zap.Error(err))
	}
	l := s.opts.Logger
	if fromCtx := logger.FromContext(ctx); fromCtx.Core().Enabled(zap.WarnLevel) {
		l = fromCtx
	}
	l.Warn("Using mock data for "+s.table+" - database not ready", fields...)
	s.opts.Observer.Fallback(s.table, op)
	return true
}

func isDomainError(err error) bool {
	var de *shared.DomainError
	return errors.As(err, &de)
}
