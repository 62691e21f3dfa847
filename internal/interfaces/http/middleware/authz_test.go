package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/infrastructure/auth"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
)

func TestRoleGuards(t *testing.T) {
	jwtService := newTestJWTService()

	subjects := map[string]auth.Subject{
		"admin":    {UserID: "user_001", Email: "admin@jeenmataimpex.com", Role: "admin"},
		"approved": approvedDealer(),
		"pending":  {UserID: "user_003", Email: "new.dealer@gmail.com", Role: "user", DealerStatus: "Pending"},
		"customer": {UserID: "user_004", Email: "walkin@gmail.com", Role: "user"},
	}

	tests := []struct {
		name    string
		guard   gin.HandlerFunc
		subject string
		status  int
		code    string
	}{
		{"admin passes admin guard", RequireAdmin(), "admin", http.StatusOK, ""},
		{"dealer blocked by admin guard", RequireAdmin(), "approved", http.StatusForbidden, dto.ErrCodeForbidden},
		{"anonymous blocked by admin guard", RequireAdmin(), "", http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"approved dealer passes", RequireApprovedDealer(), "approved", http.StatusOK, ""},
		{"admin passes dealer guard", RequireApprovedDealer(), "admin", http.StatusOK, ""},
		{"pending dealer blocked", RequireApprovedDealer(), "pending", http.StatusForbidden, dto.ErrCodeDealerNotApproved},
		{"plain user blocked", RequireApprovedDealer(), "customer", http.StatusForbidden, dto.ErrCodeDealerNotApproved},
		{"anonymous blocked by dealer guard", RequireApprovedDealer(), "", http.StatusUnauthorized, dto.ErrCodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(OptionalJWTAuthMiddleware(jwtService), tt.guard)
			router.GET("/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.subject != "" {
				pair := newTestTokenPair(t, jwtService, subjects[tt.subject])
				req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, decodeError(t, rec).Code)
			}
		})
	}
}

type staticFlags map[string]bool

func (f staticFlags) IsEnabled(_ context.Context, flag string) bool {
	return f[flag]
}

func TestRequireFeature(t *testing.T) {
	flags := staticFlags{"bulk_product_upload": true}

	router := gin.New()
	router.GET("/bulk", RequireFeature(flags, "bulk_product_upload"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/analytics", RequireFeature(flags, "advanced_analytics"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bulk", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analytics", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, dto.ErrCodeFeatureDisabled, decodeError(t, rec).Code)
}
