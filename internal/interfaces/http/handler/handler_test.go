package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/jeenmata/impex/internal/application/analytics"
	bulkapp "github.com/jeenmata/impex/internal/application/bulk"
	catalogapp "github.com/jeenmata/impex/internal/application/catalog"
	dashboardapp "github.com/jeenmata/impex/internal/application/dashboard"
	identityapp "github.com/jeenmata/impex/internal/application/identity"
	mediaapp "github.com/jeenmata/impex/internal/application/media"
	settingsapp "github.com/jeenmata/impex/internal/application/settings"
	tradeapp "github.com/jeenmata/impex/internal/application/trade"
	"github.com/jeenmata/impex/internal/domain/analytics"
	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/domain/logistics"
	"github.com/jeenmata/impex/internal/domain/settings"
	"github.com/jeenmata/impex/internal/domain/trade"
	"github.com/jeenmata/impex/internal/infrastructure/auth"
	bulkfile "github.com/jeenmata/impex/internal/infrastructure/bulk"
	"github.com/jeenmata/impex/internal/infrastructure/cache"
	"github.com/jeenmata/impex/internal/infrastructure/config"
	"github.com/jeenmata/impex/internal/infrastructure/event"
	"github.com/jeenmata/impex/internal/infrastructure/hybrid"
	"github.com/jeenmata/impex/internal/infrastructure/mockdata"
	"github.com/jeenmata/impex/internal/infrastructure/storage"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"github.com/jeenmata/impex/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
)

const testDemoPassword = "demo-pass-123"

func init() {
	gin.SetMode(gin.TestMode)
}

// testApp wires every handler over in-memory stores seeded with the sample data
type testApp struct {
	engine      *gin.Engine
	jwt         *auth.JWTService
	revocations *auth.MemoryRevocationStore
	objects     *storage.MemoryObjectStorage
	settings    *settingsapp.Service
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	productRepo := hybrid.New[catalog.Product](catalog.TableProducts, nil, mockdata.Products(), hybrid.Options{})
	brandRepo := hybrid.New[catalog.Brand](catalog.TableBrands, nil, mockdata.Brands(), hybrid.Options{})
	categoryRepo := hybrid.New[catalog.Category](catalog.TableCategories, nil, mockdata.Categories(), hybrid.Options{})
	userRepo := hybrid.New[identity.User](identity.TableUsers, nil, mockdata.Users(), hybrid.Options{})
	appRepo := hybrid.New[identity.DealerApplication](identity.TableApplications, nil, mockdata.Applications(), hybrid.Options{})
	orderRepo := hybrid.New[trade.Order](trade.TableOrders, nil, mockdata.Orders(), hybrid.Options{})
	shipmentRepo := hybrid.New[logistics.Shipment](logistics.TableShipments, nil, mockdata.Shipments(), hybrid.Options{})
	settingsRepo := hybrid.New[settings.SiteSettings](settings.TableSiteSettings, nil, mockdata.Settings(), hybrid.Options{})
	visitRepo := hybrid.New[analytics.PageVisit](analytics.TablePageVisits, nil, mockdata.PageVisits(), hybrid.Options{})

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "impex-test",
		MaxRefreshCount:        5,
	})
	revocations := auth.NewMemoryRevocationStore()
	bus := event.NewInMemoryEventBus(nil)
	carts := cache.NewMemoryCartStore()
	objects := storage.NewMemoryObjectStorage("/uploads")
	sessions := bulkfile.NewMemorySessionStore(0)
	t.Cleanup(sessions.Stop)

	settingsService := settingsapp.NewService(settingsRepo, mockdata.SiteSettings, nil)

	products := NewProductHandler(catalogapp.NewProductService(productRepo, bus, nil))
	brands := NewBrandHandler(catalogapp.NewBrandService(brandRepo, productRepo, nil))
	categories := NewCategoryHandler(catalogapp.NewCategoryService(categoryRepo))
	authH := NewAuthHandler(identityapp.NewAuthService(userRepo, jwtService, revocations, identityapp.AuthConfig{DemoPassword: testDemoPassword}, nil))
	users := NewUserHandler(identityapp.NewUserService(userRepo, revocations, time.Hour, nil))
	dealers := NewDealerHandler(identityapp.NewDealerService(appRepo, userRepo, settingsService, bus, nil))
	cartH := NewCartHandler(tradeapp.NewCartService(carts, productRepo))
	orders := NewOrderHandler(tradeapp.NewOrderService(orderRepo, userRepo, carts, bus, nil))
	settingsH := NewSettingsHandler(settingsService)
	visits := NewAnalyticsHandler(analyticsapp.NewVisitService(visitRepo, settingsService, nil))
	dashboard := NewDashboardHandler(dashboardapp.NewService(productRepo, orderRepo, appRepo, userRepo))
	bulkH := NewBulkHandler(bulkapp.NewUploadService(sessions, productRepo, brandRepo, shipmentRepo, settingsService, bulkapp.Limits{}, nil), 0)
	media := NewMediaHandler(mediaapp.NewImageService(objects, 0, nil), objects)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/uploads/*key", media.Serve)

	api := engine.Group("/api/v1", middleware.OptionalJWTAuthMiddleware(jwtService))
	api.GET("/catalog/products", products.Search)
	api.GET("/catalog/products/:slug", products.GetBySlug)
	api.GET("/catalog/featured", products.Featured)
	api.GET("/catalog/brands", brands.ListActive)
	api.GET("/catalog/brands/:slug", brands.GetBySlug)
	api.GET("/catalog/categories", categories.ListActive)
	api.GET("/settings", settingsH.Get)
	api.POST("/page-visits", visits.RecordVisit)
	api.POST("/dealer-applications", dealers.Apply)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/refresh", authH.Refresh)

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.Revocations = revocations
	authed := api.Group("", middleware.JWTAuthMiddlewareWithConfig(jwtCfg))
	authed.POST("/auth/logout", authH.Logout)
	authed.GET("/me", users.Me)

	dealer := authed.Group("/dealer", middleware.RequireApprovedDealer())
	dealer.GET("/cart", cartH.Get)
	dealer.POST("/cart/items", cartH.AddItem)
	dealer.PATCH("/cart/items/:id", cartH.UpdateItem)
	dealer.DELETE("/cart/items/:id", cartH.RemoveItem)
	dealer.POST("/orders", orders.Checkout)
	dealer.GET("/orders", orders.ListMine)
	dealer.POST("/orders/:id/cancel", orders.CancelMine)

	admin := authed.Group("/admin", middleware.RequireAdmin())
	admin.GET("/dashboard", dashboard.Stats)
	admin.POST("/products", products.Create)
	admin.DELETE("/products/:id", products.Delete)
	admin.GET("/orders", orders.List)
	admin.PUT("/orders/:id/status", orders.UpdateStatus)
	admin.PUT("/users/:id/role", users.UpdateRole)
	admin.PUT("/settings", settingsH.Update)
	admin.GET("/analytics/page-visits", visits.Summary)
	admin.POST("/uploads/images", media.UploadImage)
	bulk := admin.Group("/bulk", middleware.RequireFeature(settingsService, settings.FlagBulkProductUpload))
	bulk.POST("/validate", bulkH.Validate)
	bulk.POST("/import", bulkH.Import)
	bulk.GET("/template", bulkH.Template)

	return &testApp{
		engine:      engine,
		jwt:         jwtService,
		revocations: revocations,
		objects:     objects,
		settings:    settingsService,
	}
}

func (a *testApp) token(t *testing.T, sub auth.Subject) string {
	t.Helper()
	pair, err := a.jwt.GenerateTokenPair(sub)
	require.NoError(t, err)
	return pair.AccessToken
}

func (a *testApp) adminToken(t *testing.T) string {
	return a.token(t, auth.Subject{UserID: "user_001", Email: "admin@jeenmataimpex.com", Role: "admin"})
}

func (a *testApp) dealerToken(t *testing.T) string {
	return a.token(t, auth.Subject{UserID: "user_002", Email: "abc.hardware@gmail.com", Role: "user", DealerStatus: "Approved"})
}

// do sends a request with an optional JSON body and bearer token
func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequestWithContext(context.Background(), method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the envelope and its data into out
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) dto.Response {
	t.Helper()
	var envelope struct {
		dto.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	if out != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return envelope.Response
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decode(t, rec, nil)
	require.NotNil(t, resp.Error, rec.Body.String())
	return resp.Error.Code
}
