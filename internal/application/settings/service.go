// Package settings serves the site settings singleton and its feature flags.
package settings

import (
	"context"
	"errors"
	"maps"

	"github.com/jeenmata/impex/internal/domain/settings"
	"github.com/jeenmata/impex/internal/domain/shared"
	"go.uber.org/zap"
)

// Service reads and updates the site settings row
type Service struct {
	repo     settings.Repository
	defaults func() settings.SiteSettings
	logger   *zap.Logger
}

// NewService creates a settings service. defaults supplies the row returned
// while the table is empty or unreadable.
func NewService(repo settings.Repository, defaults func() settings.SiteSettings, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, defaults: defaults, logger: logger}
}

// Get returns the oldest settings row, or the defaults when there is none
func (s *Service) Get(ctx context.Context) (*settings.SiteSettings, error) {
	rows, err := s.repo.List(ctx, shared.NewQuery("created_date", 1))
	if err != nil {
		s.logger.Warn("Failed to load site settings, using defaults", zap.Error(err))
		return s.fallback(), nil
	}
	if len(rows) == 0 {
		return s.fallback(), nil
	}
	row := rows[0]
	row.FeatureFlags = maps.Clone(row.FeatureFlags)
	return &row, nil
}

// Update applies a partial change and stores it, creating the row when the
// table is empty.
func (s *Service) Update(ctx context.Context, req UpdateSettingsRequest) (*settings.SiteSettings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := current.Apply(req.toDomain()); err != nil {
		return nil, err
	}

	saved, err := s.repo.Update(ctx, current)
	if errors.Is(err, shared.ErrNotFound) {
		saved, err = s.repo.Create(ctx, current)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("Site settings updated", zap.String("settings_id", saved.ID))
	return saved, nil
}

// IsEnabled reports whether a feature flag is on
func (s *Service) IsEnabled(ctx context.Context, flag string) bool {
	current, err := s.Get(ctx)
	if err != nil {
		return false
	}
	return current.IsEnabled(flag)
}

func (s *Service) fallback() *settings.SiteSettings {
	if s.defaults == nil {
		return &settings.SiteSettings{FeatureFlags: map[string]bool{}}
	}
	d := s.defaults()
	d.FeatureFlags = maps.Clone(d.FeatureFlags)
	return &d
}
