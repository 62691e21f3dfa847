package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/infrastructure/auth"
	"github.com/jeenmata/impex/internal/infrastructure/logger"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTEmailKey   = "jwt_email"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Revocations is optional; without it logout and forced sign-out only
	// take effect when the access token expires
	Revocations auth.RevocationStore
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// OnError replaces the default 401 response
	OnError func(c *gin.Context, err error)
	Logger  *zap.Logger
}

// DefaultJWTConfig returns default JWT middleware configuration
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/metrics",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			handleAuthError(c, cfg, log, auth.ErrInvalidToken, "Missing or malformed authorization header")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			handleAuthError(c, cfg, log, err, "Token validation failed")
			return
		}

		if cfg.Revocations != nil && revoked(c, cfg.Revocations, claims, log) {
			handleAuthError(c, cfg, log, auth.ErrTokenBlacklisted, "Token has been revoked")
			return
		}

		setClaims(c, claims)

		log.Debug("JWT authentication successful",
			zap.String("user_id", claims.UserID),
			zap.String("role", claims.Role),
		)

		c.Next()
	}
}

// revoked checks the token ID and then the user-wide cut-off. Store errors
// fail open so a redis outage does not sign everyone out.
func revoked(c *gin.Context, store auth.RevocationStore, claims *auth.Claims, log *zap.Logger) bool {
	ctx := c.Request.Context()

	if claims.ID != "" {
		isRevoked, err := store.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			log.Error("Failed to check token revocation", zap.String("jti", claims.ID), zap.Error(err))
		} else if isRevoked {
			return true
		}
	}

	isRevoked, err := store.IsUserRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		log.Error("Failed to check user revocation", zap.String("user_id", claims.UserID), zap.Error(err))
		return false
	}
	return isRevoked
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTEmailKey, claims.Email)
	c.Set(JWTRoleKey, claims.Role)

	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
}

func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, log *zap.Logger, err error, message string) {
	if cfg.OnError != nil {
		cfg.OnError(c, err)
		c.Abort()
		return
	}

	log.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("message", message),
		zap.String("path", c.Request.URL.Path),
	)

	code := dto.ErrCodeUnauthorized
	msg := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, msg = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code, msg = dto.ErrCodeTokenRevoked, "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidTokenType):
		code, msg = dto.ErrCodeTokenInvalid, "Invalid token type"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		code, msg = dto.ErrCodeTokenInvalid, "Token is not yet valid"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrMissingUserID):
		if c.GetHeader(AuthHeaderKey) != "" {
			code, msg = dto.ErrCodeTokenInvalid, "Invalid token"
		}
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, msg, c.GetString(RequestIDKey)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTEmail retrieves the signed-in email from context
func GetJWTEmail(c *gin.Context) string {
	return c.GetString(JWTEmailKey)
}

// OptionalJWTAuthMiddleware extracts claims when a valid token is present
// and lets anonymous requests through
func OptionalJWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}
