package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/jeenmata/impex/internal/domain/settings"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/infrastructure/hybrid"
	"github.com/jeenmata/impex/internal/infrastructure/mockdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSettingsRepository is a testify mock of settings.Repository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) List(ctx context.Context, q shared.Query) ([]settings.SiteSettings, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]settings.SiteSettings), args.Error(1)
}

func (m *MockSettingsRepository) Get(ctx context.Context, id string) (*settings.SiteSettings, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.SiteSettings), args.Error(1)
}

func (m *MockSettingsRepository) Create(ctx context.Context, e *settings.SiteSettings) (*settings.SiteSettings, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.SiteSettings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, e *settings.SiteSettings) (*settings.SiteSettings, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.SiteSettings), args.Error(1)
}

func (m *MockSettingsRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSettingsRepository) BulkCreate(ctx context.Context, es []settings.SiteSettings) ([]settings.SiteSettings, error) {
	args := m.Called(ctx, es)
	return args.Get(0).([]settings.SiteSettings), args.Error(1)
}

func newMemoryService(seed []settings.SiteSettings) *Service {
	store := hybrid.New[settings.SiteSettings](settings.TableSiteSettings, nil, seed, hybrid.Options{})
	return NewService(store, mockdata.SiteSettings, nil)
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored row", func(t *testing.T) {
		svc := newMemoryService(mockdata.Settings())

		got, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "settings_001", got.ID)
		assert.Equal(t, "Jeen Mata Impex", got.CompanyName)
	})

	t.Run("returns defaults when the table is empty", func(t *testing.T) {
		svc := newMemoryService(nil)

		got, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "+977-1-XXXXXXX", got.ContactPhone)
		assert.True(t, got.IsEnabled(settings.FlagBulkProductUpload))
	})

	t.Run("returns defaults when the repository fails", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("List", ctx, shared.NewQuery("created_date", 1)).Return(nil, errors.New("connection refused"))
		svc := NewService(repo, mockdata.SiteSettings, nil)

		got, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Jeen Mata Impex", got.CompanyName)
		repo.AssertExpectations(t)
	})

	t.Run("returned flags do not alias the stored row", func(t *testing.T) {
		svc := newMemoryService(mockdata.Settings())

		got, err := svc.Get(ctx)
		require.NoError(t, err)
		got.FeatureFlags[settings.FlagAdvancedAnalytics] = true

		again, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.False(t, again.IsEnabled(settings.FlagAdvancedAnalytics))
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("merges flags and keeps omitted fields", func(t *testing.T) {
		svc := newMemoryService(mockdata.Settings())
		tagline := "Tools for every trade"

		got, err := svc.Update(ctx, UpdateSettingsRequest{
			Tagline:      &tagline,
			FeatureFlags: map[string]bool{settings.FlagAdvancedAnalytics: true},
		})
		require.NoError(t, err)
		assert.Equal(t, tagline, got.Tagline)
		assert.Equal(t, "Jeen Mata Impex", got.CompanyName)
		assert.True(t, got.IsEnabled(settings.FlagAdvancedAnalytics))
		assert.True(t, got.IsEnabled(settings.FlagWhatsAppNotifications))

		assert.True(t, svc.IsEnabled(ctx, settings.FlagAdvancedAnalytics))
	})

	t.Run("creates the row when none exists", func(t *testing.T) {
		svc := newMemoryService(nil)
		name := "JMI"

		got, err := svc.Update(ctx, UpdateSettingsRequest{CompanyName: &name})
		require.NoError(t, err)
		assert.Equal(t, "JMI", got.CompanyName)

		stored, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "JMI", stored.CompanyName)
	})

	t.Run("rejects unknown flags", func(t *testing.T) {
		svc := newMemoryService(mockdata.Settings())

		_, err := svc.Update(ctx, UpdateSettingsRequest{FeatureFlags: map[string]bool{"beta": true}})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.NewValidationError(""))
	})
}

func TestService_IsEnabled(t *testing.T) {
	svc := newMemoryService(mockdata.Settings())

	assert.True(t, svc.IsEnabled(context.Background(), settings.FlagDealerSelfRegistration))
	assert.False(t, svc.IsEnabled(context.Background(), settings.FlagAdvancedAnalytics))
	assert.False(t, svc.IsEnabled(context.Background(), "unknown"))
}
