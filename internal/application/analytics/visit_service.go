// Package analytics records page views and summarizes them for admins.
package analytics

import (
	"context"
	"time"

	"github.com/jeenmata/impex/internal/domain/analytics"
	"github.com/jeenmata/impex/internal/domain/settings"
	"github.com/jeenmata/impex/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultSummaryWindow is how many recent visits a summary covers
const DefaultSummaryWindow = 5000

// FeatureChecker reports whether a site feature flag is on
type FeatureChecker interface {
	IsEnabled(ctx context.Context, flag string) bool
}

// RecordVisitRequest is sent by the storefront on every page view
type RecordVisitRequest struct {
	Path string `json:"path" binding:"required,max=500"`
	Page string `json:"page" binding:"max=100"`
}

// Summary is the admin analytics view
type Summary struct {
	TotalVisits int                   `json:"total_visits"`
	Paths       []analytics.PathCount `json:"paths"`
	Recent      []analytics.PageVisit `json:"recent"`
}

// VisitService records and summarizes page visits
type VisitService struct {
	visitRepo analytics.Repository
	features  FeatureChecker
	logger    *zap.Logger
	now       func() time.Time
}

// NewVisitService creates a new VisitService
func NewVisitService(visitRepo analytics.Repository, features FeatureChecker, logger *zap.Logger) *VisitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisitService{visitRepo: visitRepo, features: features, logger: logger, now: time.Now}
}

// Record stores a page view. userEmail is empty for anonymous visitors.
func (s *VisitService) Record(ctx context.Context, req RecordVisitRequest, userEmail, userAgent string) (*analytics.PageVisit, error) {
	visit, err := analytics.NewPageVisit(req.Path, req.Page, userEmail, userAgent, s.now())
	if err != nil {
		return nil, err
	}
	saved, err := s.visitRepo.Create(ctx, visit)
	if err != nil {
		s.logger.Warn("Failed to record page visit", zap.String("path", visit.Path), zap.Error(err))
		return nil, err
	}
	return saved, nil
}

// Summary aggregates the most recent visits per path. It requires the
// advanced analytics feature.
func (s *VisitService) Summary(ctx context.Context, window int) (*Summary, error) {
	if !s.features.IsEnabled(ctx, settings.FlagAdvancedAnalytics) {
		return nil, shared.ErrFeatureOff
	}
	if window <= 0 {
		window = DefaultSummaryWindow
	}
	visits, err := s.visitRepo.List(ctx, shared.NewQuery("-created_date", window))
	if err != nil {
		return nil, err
	}
	recent := visits
	if len(recent) > 20 {
		recent = recent[:20]
	}
	return &Summary{
		TotalVisits: len(visits),
		Paths:       analytics.SummarizeVisits(visits),
		Recent:      recent,
	}, nil
}
