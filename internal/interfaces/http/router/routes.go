package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/domain/settings"
	"github.com/jeenmata/impex/internal/interfaces/http/handler"
	"github.com/jeenmata/impex/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers mounted by Storefront
type Handlers struct {
	Product   *handler.ProductHandler
	Brand     *handler.BrandHandler
	Category  *handler.CategoryHandler
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Dealer    *handler.DealerHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	Shipment  *handler.ShipmentHandler
	Settings  *handler.SettingsHandler
	Analytics *handler.AnalyticsHandler
	Dashboard *handler.DashboardHandler
	Bulk      *handler.BulkHandler
	Media     *handler.MediaHandler
}

// Guards holds the access middleware shared by the route groups.
// Authenticated rejects requests without a valid access token.
// Idempotent, when set, guards checkout against double submission.
type Guards struct {
	Authenticated gin.HandlerFunc
	Features      middleware.FeatureChecker
	Idempotent    gin.HandlerFunc
}

// Storefront returns the route groups of the public catalog, the dealer
// portal and the admin back-office
func Storefront(h Handlers, g Guards) []*DomainGroup {
	return []*DomainGroup{
		catalogRoutes(h),
		siteRoutes(h),
		authRoutes(h, g),
		accountRoutes(h, g),
		dealerRoutes(h, g),
		adminRoutes(h, g),
	}
}

func catalogRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("catalog", "/catalog").
		GET("/products", h.Product.Search).
		GET("/products/:slug", h.Product.GetBySlug).
		GET("/featured", h.Product.Featured).
		GET("/brands", h.Brand.ListActive).
		GET("/brands/:slug", h.Brand.GetBySlug).
		GET("/categories", h.Category.ListActive)
}

func siteRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("site", "").
		GET("/settings", h.Settings.Get).
		POST("/page-visits", h.Analytics.RecordVisit).
		POST("/dealer-applications", h.Dealer.Apply)
}

func authRoutes(h Handlers, g Guards) *DomainGroup {
	group := NewDomainGroup("auth", "/auth").
		POST("/login", h.Auth.Login).
		POST("/refresh", h.Auth.Refresh)
	group.Group("session", "").
		Use(g.Authenticated).
		POST("/logout", h.Auth.Logout).
		PUT("/password", h.Auth.ChangePassword)
	return group
}

// accountRoutes are open to any signed-in user, including dealers whose
// application is still under review
func accountRoutes(h Handlers, g Guards) *DomainGroup {
	return NewDomainGroup("account", "").
		Use(g.Authenticated).
		GET("/me", h.User.Me).
		PUT("/me", h.User.UpdateMe).
		GET("/dealer/profile", h.Dealer.Profile).
		PUT("/dealer/profile", h.Dealer.SaveProfile)
}

func dealerRoutes(h Handlers, g Guards) *DomainGroup {
	group := NewDomainGroup("dealer", "/dealer").
		Use(g.Authenticated, middleware.RequireApprovedDealer())

	group.Group("cart", "/cart").
		GET("", h.Cart.Get).
		DELETE("", h.Cart.Clear).
		POST("/items", h.Cart.AddItem).
		PUT("/items/:id", h.Cart.UpdateItem).
		PATCH("/items/:id", h.Cart.UpdateItem).
		DELETE("/items/:id", h.Cart.RemoveItem)

	checkout := []gin.HandlerFunc{h.Order.Checkout}
	if g.Idempotent != nil {
		checkout = append([]gin.HandlerFunc{g.Idempotent}, checkout...)
	}
	group.Group("orders", "/orders").
		POST("", checkout...).
		GET("", h.Order.ListMine).
		GET("/:id", h.Order.GetMine).
		POST("/:id/cancel", h.Order.CancelMine)

	group.GET("/shipments", h.Shipment.List)
	return group
}

func adminRoutes(h Handlers, g Guards) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin").
		Use(g.Authenticated, middleware.RequireAdmin())

	admin.GET("/dashboard", h.Dashboard.Stats)

	admin.Group("products", "/products").
		GET("", h.Product.List).
		POST("", h.Product.Create).
		GET("/:id", h.Product.GetByID).
		PUT("/:id", h.Product.Update).
		DELETE("/:id", h.Product.Delete)

	admin.Group("brands", "/brands").
		GET("", h.Brand.List).
		POST("", h.Brand.Create).
		GET("/:id", h.Brand.GetByID).
		PUT("/:id", h.Brand.Update).
		DELETE("/:id", h.Brand.Delete)

	admin.Group("categories", "/categories").
		GET("", h.Category.List).
		POST("", h.Category.Create).
		GET("/:id", h.Category.GetByID).
		PUT("/:id", h.Category.Update).
		DELETE("/:id", h.Category.Delete)

	admin.Group("shipments", "/shipments").
		GET("", h.Shipment.List).
		POST("", h.Shipment.Create).
		GET("/:id", h.Shipment.Get).
		PUT("/:id", h.Shipment.Update).
		PUT("/:id/status", h.Shipment.UpdateStatus).
		DELETE("/:id", h.Shipment.Delete)

	admin.Group("orders", "/orders").
		GET("", h.Order.List).
		GET("/:id", h.Order.Get).
		PUT("/:id/status", h.Order.UpdateStatus)

	admin.Group("users", "/users").
		GET("", h.User.List).
		GET("/:id", h.User.Get).
		PUT("/:id/role", h.User.UpdateRole).
		PUT("/:id/dealer-status", h.User.UpdateDealerStatus)

	admin.Group("dealer-applications", "/dealer-applications").
		GET("", h.Dealer.ListApplications).
		GET("/:id", h.Dealer.GetApplication).
		POST("/:id/approve", h.Dealer.Approve).
		POST("/:id/reject", h.Dealer.Reject)

	admin.GET("/dealers", h.Dealer.Dealers)
	admin.PUT("/settings", h.Settings.Update)
	admin.GET("/analytics/page-visits", h.Analytics.Summary)
	admin.POST("/uploads/images", h.Media.UploadImage)

	admin.Group("bulk", "/bulk").
		Use(middleware.RequireFeature(g.Features, settings.FlagBulkProductUpload)).
		POST("/validate", h.Bulk.Validate).
		POST("/import", h.Bulk.Import).
		GET("/sessions/:id", h.Bulk.Session).
		GET("/template", h.Bulk.Template)

	return admin
}
