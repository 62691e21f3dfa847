// Package identity handles sign-in, user administration and the dealer
// application workflow.
package identity

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthConfig tunes sign-in
type AuthConfig struct {
	// DemoPassword signs in accounts that have no password hash, such as the
	// sample users. Empty disables it; it must stay empty in production.
	DemoPassword string
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo    identity.UserRepository
	jwtService  *auth.JWTService
	revocations auth.RevocationStore
	config      AuthConfig
	logger      *zap.Logger
}

// NewAuthService creates a new AuthService. revocations may be nil.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	revocations auth.RevocationStore,
	config AuthConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		revocations: revocations,
		config:      config,
		logger:      logger,
	}
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// Login verifies the credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", req.Email))

	user, err := findUserByEmail(ctx, s.userRepo, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logger.Warn("User not found during login", zap.String("email", req.Email))
		return nil, errInvalidCredentials
	}
	if !s.checkPassword(user, req.Password) {
		s.logger.Warn("Invalid password", zap.String("user_id", user.ID))
		return nil, errInvalidCredentials
	}
	if user.DealerStatus == identity.DealerSuspended {
		return nil, shared.NewDomainError("ACCOUNT_SUSPENDED", "Your dealer account has been suspended")
	}

	pair, err := s.jwtService.GenerateTokenPair(subjectOf(user))
	if err != nil {
		s.logger.Error("Failed to generate tokens", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_ERROR", "Failed to generate authentication tokens")
	}
	s.logger.Info("Login successful", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return &LoginResult{User: user, Token: pair}, nil
}

func (s *AuthService) checkPassword(user *identity.User, password string) bool {
	if user.PasswordHash != "" {
		return user.VerifyPassword(password)
	}
	if s.config.DemoPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.config.DemoPassword)) == 1
}

// Refresh exchanges a refresh token for a new pair. The user is read again
// so that role and dealer status changes take effect.
func (s *AuthService) Refresh(ctx context.Context, req RefreshTokenRequest) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, func(userID string) (auth.Subject, error) {
		user, err := s.userRepo.Get(ctx, userID)
		if err != nil {
			return auth.Subject{}, err
		}
		if user.DealerStatus == identity.DealerSuspended {
			return auth.Subject{}, shared.NewDomainError("ACCOUNT_SUSPENDED", "Your dealer account has been suspended")
		}
		return subjectOf(user), nil
	})
	if err != nil {
		var de *shared.DomainError
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, tokenError(err)
	}

	if s.revocations != nil {
		if err := s.revocations.RevokeToken(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Warn("Failed to revoke used refresh token", zap.Error(err))
		}
	}
	return pair, nil
}

// Logout revokes the access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, access *auth.Claims, req LogoutRequest) error {
	if s.revocations == nil {
		return nil
	}
	if err := s.revocations.RevokeToken(ctx, access.ID, access.GetRemainingTTL()); err != nil {
		return err
	}
	if req.RefreshToken != "" {
		refresh, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
		if err == nil && refresh.UserID == access.UserID {
			if err := s.revocations.RevokeToken(ctx, refresh.ID, refresh.GetRemainingTTL()); err != nil {
				return err
			}
		}
	}
	s.logger.Info("User logout", zap.String("user_id", access.UserID))
	return nil
}

// ChangePassword sets a new password. Accounts without a password may set
// one without giving the current password.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash != "" && !user.VerifyPassword(req.CurrentPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	_, err = s.userRepo.Update(ctx, user)
	return err
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	if s.revocations == nil {
		return nil
	}
	revoked, err := s.revocations.IsTokenRevoked(ctx, claims.ID)
	if err == nil && !revoked {
		revoked, err = s.revocations.IsUserRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
	}
	if err != nil {
		s.logger.Error("Failed to check token revocation", zap.Error(err))
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
	if revoked {
		return shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
	}
	return nil
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}

func subjectOf(u *identity.User) auth.Subject {
	return auth.Subject{
		UserID:       u.ID,
		Email:        u.Email,
		Role:         string(u.Role),
		DealerStatus: string(u.DealerStatus),
	}
}
