package bulk

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore(0, WithClock(func() time.Time { return now }))
	defer store.Stop()

	s := NewSession(EntityBrands, "brands.csv", 120, "admin@jeenmataimpex.com", &ValidationResult{}, now, 30*time.Minute)
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StateValidated, got.State)

	t.Run("returns copies", func(t *testing.T) {
		got.State = StateFailed
		again, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, StateValidated, again.State)

		s.State = StateCompleted
		again, err = store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, StateValidated, again.State, "saved session is not aliased")
	})

	now = now.Add(31 * time.Minute)
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.Equal(t, 1, store.Len())
	store.Cleanup()
	assert.Equal(t, 0, store.Len())

	require.NoError(t, store.Delete(ctx, "missing"))
	store.Stop()
}

func TestMemorySessionStore_Claim(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore(0, WithClock(func() time.Time { return now }))
	defer store.Stop()

	s := NewSession(EntityProducts, "products.csv", 64, "", &ValidationResult{}, now, time.Hour)
	require.NoError(t, store.Save(ctx, s))

	t.Run("one winner under contention", func(t *testing.T) {
		const workers = 16
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
			errs []error
		)
		start := make(chan struct{})
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := store.Claim(ctx, s.ID, StateValidated, StateImporting)
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					wins++
				} else {
					errs = append(errs, err)
				}
			}()
		}
		close(start)
		wg.Wait()

		assert.Equal(t, 1, wins)
		for _, err := range errs {
			assert.True(t, errors.Is(err, shared.ErrInvalidState), "got %v", err)
		}
		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, StateImporting, got.State)
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := store.Claim(ctx, "missing", StateValidated, StateImporting)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
