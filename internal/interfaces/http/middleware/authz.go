package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
)

// RequireAdmin allows only admin tokens. It must run after JWT authentication.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortWith(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !claims.IsAdmin() {
			abortWith(c, http.StatusForbidden, dto.ErrCodeForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}

// RequireApprovedDealer allows admins and dealers whose account is approved.
// Dealer status is read from the token, which is re-issued on sign-in.
func RequireApprovedDealer() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortWith(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !claims.IsAdmin() && claims.DealerStatus != string(identity.DealerApproved) {
			abortWith(c, http.StatusForbidden, dto.ErrCodeDealerNotApproved, "Your dealer account is not approved yet")
			return
		}
		c.Next()
	}
}

// FeatureChecker reports whether a site feature flag is on
type FeatureChecker interface {
	IsEnabled(ctx context.Context, flag string) bool
}

// RequireFeature rejects requests while flag is off
func RequireFeature(checker FeatureChecker, flag string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.IsEnabled(c.Request.Context(), flag) {
			abortWith(c, http.StatusForbidden, dto.ErrCodeFeatureDisabled, "This feature is currently disabled")
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDKey)))
}
