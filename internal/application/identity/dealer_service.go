package identity

import (
	"context"

	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/domain/settings"
	"github.com/jeenmata/impex/internal/domain/shared"
	"go.uber.org/zap"
)

// FeatureChecker reports whether a site feature flag is on
type FeatureChecker interface {
	IsEnabled(ctx context.Context, flag string) bool
}

// DealerService runs the dealer application workflow and dealer profiles
type DealerService struct {
	appRepo  identity.DealerApplicationRepository
	userRepo identity.UserRepository
	features FeatureChecker
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewDealerService creates a new DealerService. events may be nil.
func NewDealerService(
	appRepo identity.DealerApplicationRepository,
	userRepo identity.UserRepository,
	features FeatureChecker,
	events shared.EventPublisher,
	logger *zap.Logger,
) *DealerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DealerService{appRepo: appRepo, userRepo: userRepo, features: features, events: events, logger: logger}
}

// Apply records a public dealer application. At most one pending
// application may exist per email.
func (s *DealerService) Apply(ctx context.Context, req DealerApplicationRequest) (*identity.DealerApplication, error) {
	if !s.features.IsEnabled(ctx, settings.FlagDealerSelfRegistration) {
		return nil, shared.ErrFeatureOff
	}
	app, err := identity.NewDealerApplication(req.toInput())
	if err != nil {
		return nil, err
	}

	pending, err := s.appRepo.List(ctx, shared.NewQuery("", 1).
		Where("email", app.Email).
		Where("status", string(identity.ApplicationPending)))
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An application for this email is already awaiting review")
	}
	existing, err := findUserByEmail(ctx, s.userRepo, app.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.IsApprovedDealer() {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "This email already belongs to an approved dealer")
	}

	events := app.GetDomainEvents()
	app.ClearDomainEvents()
	saved, err := s.appRepo.Create(ctx, app)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)
	s.logger.Info("Dealer application submitted",
		zap.String("application_id", saved.ID),
		zap.String("business_name", saved.BusinessName))
	return saved, nil
}

// ListApplications returns applications, newest first
func (s *DealerService) ListApplications(ctx context.Context, filter ApplicationListFilter) ([]identity.DealerApplication, error) {
	q := shared.NewQuery("-created_date", 0)
	if filter.Status != "" {
		q = q.Where("status", filter.Status)
	}
	return s.appRepo.List(ctx, q)
}

// Pending returns the applications awaiting review, newest first
func (s *DealerService) Pending(ctx context.Context) ([]identity.DealerApplication, error) {
	return s.ListApplications(ctx, ApplicationListFilter{Status: string(identity.ApplicationPending)})
}

// GetApplication returns an application by ID
func (s *DealerService) GetApplication(ctx context.Context, id string) (*identity.DealerApplication, error) {
	return s.appRepo.Get(ctx, id)
}

// Approve accepts an application and creates or upgrades the dealer's user
func (s *DealerService) Approve(ctx context.Context, id string) (*ApprovalResult, error) {
	app, err := s.appRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := app.Approve(); err != nil {
		return nil, err
	}

	user, err := findUserByEmail(ctx, s.userRepo, app.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.userRepo.Create(ctx, app.ToUser())
	} else {
		app.ApplyTo(user)
		user, err = s.userRepo.Update(ctx, user)
	}
	if err != nil {
		return nil, err
	}

	events := app.GetDomainEvents()
	app.ClearDomainEvents()
	saved, err := s.appRepo.Update(ctx, app)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)
	s.logger.Info("Dealer application approved",
		zap.String("application_id", saved.ID),
		zap.String("user_id", user.ID))
	return &ApprovalResult{Application: saved, User: user}, nil
}

// Reject declines an application
func (s *DealerService) Reject(ctx context.Context, id string) (*identity.DealerApplication, error) {
	app, err := s.appRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := app.Reject(); err != nil {
		return nil, err
	}
	events := app.GetDomainEvents()
	app.ClearDomainEvents()
	saved, err := s.appRepo.Update(ctx, app)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)
	return saved, nil
}

// ApprovedDealers returns dealer accounts in good standing, newest first
func (s *DealerService) ApprovedDealers(ctx context.Context) ([]identity.User, error) {
	return s.userRepo.List(ctx, shared.NewQuery("-created_date", 0).
		Where("role", string(identity.RoleUser)).
		Where("dealer_status", string(identity.DealerApproved)))
}

// Profile returns the dealer's profile, filling an empty one from their
// approved application the first time it is opened
func (s *DealerService) Profile(ctx context.Context, userID string) (*identity.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.BusinessName != "" {
		return user, nil
	}

	apps, err := s.appRepo.List(ctx, shared.NewQuery("-created_date", 1).
		Where("email", user.Email).
		Where("status", string(identity.ApplicationApproved)))
	if err != nil || len(apps) == 0 {
		return user, err
	}
	if !identity.PrefillFromApplication(user, &apps[0]) {
		return user, nil
	}
	s.logger.Info("Dealer profile prefilled from application",
		zap.String("user_id", user.ID),
		zap.String("application_id", apps[0].ID))
	return s.userRepo.Update(ctx, user)
}

// SaveProfile stores the dealer profile form
func (s *DealerService) SaveProfile(ctx context.Context, userID string, req DealerProfileRequest) (*identity.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.UpdateProfile(req.toDomain())
	return s.userRepo.Update(ctx, user)
}

func (s *DealerService) publish(ctx context.Context, events []shared.DomainEvent) {
	if err := publish(ctx, s.events, events); err != nil {
		s.logger.Warn("Failed to publish dealer application events", zap.Error(err))
	}
}
