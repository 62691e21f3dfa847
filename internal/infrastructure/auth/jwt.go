package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jeenmata/impex/internal/infrastructure/config"
)

// TokenType represents the type of JWT token
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Common errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrTokenNotYetValid   = errors.New("token is not yet valid")
	ErrMissingUserID      = errors.New("missing user_id in claims")
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
	ErrTokenBlacklisted   = errors.New("token has been revoked")
)

// Claims are the storefront JWT claims. Role and dealer status are copied at
// sign-in so that route guards do not need a user lookup.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role,omitempty"`
	DealerStatus string    `json:"dealer_status,omitempty"`
	TokenType    TokenType `json:"token_type"`
	RefreshCount int       `json:"refresh_count,omitempty"`
}

// TokenPair represents an access and refresh token pair
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// Subject identifies who a token is issued to
type Subject struct {
	UserID       string
	Email        string
	Role         string
	DealerStatus string
}

// JWTService handles JWT token operations
type JWTService struct {
	accessSecret      []byte
	refreshSecret     []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	issuer            string
	maxRefreshCount   int
	now               func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := []byte(cfg.RefreshSecret)
	if cfg.RefreshSecret == "" {
		refreshSecret = []byte(cfg.Secret)
	}

	return &JWTService{
		accessSecret:      []byte(cfg.Secret),
		refreshSecret:     refreshSecret,
		accessExpiration:  cfg.AccessTokenExpiration,
		refreshExpiration: cfg.RefreshTokenExpiration,
		issuer:            cfg.Issuer,
		maxRefreshCount:   cfg.MaxRefreshCount,
		now:               time.Now,
	}
}

// GenerateTokenPair issues an access token carrying the subject's role and
// a refresh token carrying only the identity
func (s *JWTService) GenerateTokenPair(sub Subject) (*TokenPair, error) {
	return s.issue(sub, 0)
}

func (s *JWTService) issue(sub Subject, refreshCount int) (*TokenPair, error) {
	if sub.UserID == "" {
		return nil, ErrMissingUserID
	}
	now := s.now()
	pair := &TokenPair{
		AccessTokenExpiresAt:  now.Add(s.accessExpiration),
		RefreshTokenExpiresAt: now.Add(s.refreshExpiration),
		TokenType:             "Bearer",
	}

	// Role and dealer status ride only on the access token; a refresh
	// re-reads them from the user record.
	access := &Claims{
		UserID:       sub.UserID,
		Email:        sub.Email,
		Role:         sub.Role,
		DealerStatus: sub.DealerStatus,
		TokenType:    TokenTypeAccess,
	}
	refresh := &Claims{
		UserID:       sub.UserID,
		Email:        sub.Email,
		TokenType:    TokenTypeRefresh,
		RefreshCount: refreshCount,
	}

	var err error
	if pair.AccessToken, err = s.sign(access, now, pair.AccessTokenExpiresAt, s.accessSecret); err != nil {
		return nil, err
	}
	if pair.RefreshToken, err = s.sign(refresh, now, pair.RefreshTokenExpiresAt, s.refreshSecret); err != nil {
		return nil, err
	}
	return pair, nil
}

// sign fills the registered claims with a fresh token ID and signs with HS256
func (s *JWTService) sign(claims *Claims, now, expires time.Time, secret []byte) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.issuer,
		Subject:   claims.UserID,
		Audience:  jwt.ClaimStrings{s.issuer},
		ExpiresAt: jwt.NewNumericDate(expires),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateAccessToken validates an access token and returns its claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.accessSecret, TokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token and returns its claims
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.refreshSecret, TokenTypeRefresh)
}

func (s *JWTService) validateToken(tokenString string, secret []byte, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.TokenType != expectedType {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	return claims, nil
}

// RefreshTokenPair exchanges a refresh token for a new pair. The subject is
// looked up again by the caller so that role changes take effect.
func (s *JWTService) RefreshTokenPair(refreshToken string, lookup func(userID string) (Subject, error)) (*TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if s.maxRefreshCount > 0 && claims.RefreshCount >= s.maxRefreshCount {
		return nil, ErrMaxRefreshExceeded
	}
	sub, err := lookup(claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.issue(sub, claims.RefreshCount+1)
}

// IsAdmin reports whether the token belongs to an administrator
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

// GetIssuedAtTime returns the token's issued-at time as time.Time
func (c *Claims) GetIssuedAtTime() time.Time {
	if c.IssuedAt != nil {
		return c.IssuedAt.Time
	}
	return time.Time{}
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}
