package identity

import (
	"context"
	"time"

	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService handles the signed-in user's account and user administration
type UserService struct {
	userRepo    identity.UserRepository
	revocations auth.RevocationStore
	revokeTTL   time.Duration
	logger      *zap.Logger
}

// NewUserService creates a new UserService. Role and dealer status changes
// revoke the user's tokens for revokeTTL, which should cover the refresh
// token lifetime. revocations may be nil.
func NewUserService(userRepo identity.UserRepository, revocations auth.RevocationStore, revokeTTL time.Duration, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{userRepo: userRepo, revocations: revocations, revokeTTL: revokeTTL, logger: logger}
}

// Me returns the signed-in user
func (s *UserService) Me(ctx context.Context, userID string) (*identity.User, error) {
	return s.userRepo.Get(ctx, userID)
}

// UpdateMe updates the signed-in user's profile fields
func (s *UserService) UpdateMe(ctx context.Context, userID string, req UpdateProfileRequest) (*identity.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.UpdateProfile(req.toDomain())
	return s.userRepo.Update(ctx, user)
}

// List returns users, newest first
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]identity.User, error) {
	q := shared.NewQuery("-created_date", 0)
	if filter.Role != "" {
		q = q.Where("role", filter.Role)
	}
	if filter.DealerStatus != "" {
		q = q.Where("dealer_status", filter.DealerStatus)
	}
	return s.userRepo.List(ctx, q)
}

// Get returns a user by ID
func (s *UserService) Get(ctx context.Context, id string) (*identity.User, error) {
	return s.userRepo.Get(ctx, id)
}

// UpdateRole changes a user's role. Admins cannot change their own role.
func (s *UserService) UpdateRole(ctx context.Context, actorID, id string, req UpdateRoleRequest) (*identity.User, error) {
	if actorID == id {
		return nil, shared.NewDomainError("CANNOT_CHANGE_OWN_ROLE", "You cannot change your own role")
	}
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.SetRole(identity.Role(req.Role)); err != nil {
		return nil, err
	}
	return s.saveAndRevoke(ctx, user)
}

// UpdateDealerStatus changes a user's dealer standing
func (s *UserService) UpdateDealerStatus(ctx context.Context, id string, req UpdateDealerStatusRequest) (*identity.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.SetDealerStatus(identity.DealerStatus(req.DealerStatus)); err != nil {
		return nil, err
	}
	return s.saveAndRevoke(ctx, user)
}

// saveAndRevoke stores the user and invalidates the tokens that still carry
// the old role or dealer status
func (s *UserService) saveAndRevoke(ctx context.Context, user *identity.User) (*identity.User, error) {
	saved, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	if s.revocations != nil {
		if err := s.revocations.RevokeUser(ctx, saved.ID, s.revokeTTL); err != nil {
			s.logger.Warn("Failed to revoke user tokens", zap.String("user_id", saved.ID), zap.Error(err))
		}
	}
	s.logger.Info("User access changed",
		zap.String("user_id", saved.ID),
		zap.String("role", string(saved.Role)),
		zap.String("dealer_status", string(saved.DealerStatus)))
	return saved, nil
}
