// Command server runs the Jeen Mata Impex storefront API: the public
// catalog, the dealer portal and the admin back-office.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/jeenmata/impex/internal/application/analytics"
	bulkapp "github.com/jeenmata/impex/internal/application/bulk"
	catalogapp "github.com/jeenmata/impex/internal/application/catalog"
	dashboardapp "github.com/jeenmata/impex/internal/application/dashboard"
	identityapp "github.com/jeenmata/impex/internal/application/identity"
	logisticsapp "github.com/jeenmata/impex/internal/application/logistics"
	mediaapp "github.com/jeenmata/impex/internal/application/media"
	settingsapp "github.com/jeenmata/impex/internal/application/settings"
	tradeapp "github.com/jeenmata/impex/internal/application/trade"
	"github.com/jeenmata/impex/internal/domain/analytics"
	"github.com/jeenmata/impex/internal/domain/cart"
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
	"github.com/jeenmata/impex/internal/infrastructure/logger"
	"github.com/jeenmata/impex/internal/infrastructure/mockdata"
	"github.com/jeenmata/impex/internal/infrastructure/persistence"
	"github.com/jeenmata/impex/internal/infrastructure/persistence/models"
	"github.com/jeenmata/impex/internal/infrastructure/storage"
	"github.com/jeenmata/impex/internal/infrastructure/telemetry"
	"github.com/jeenmata/impex/internal/interfaces/http/handler"
	"github.com/jeenmata/impex/internal/interfaces/http/middleware"
	"github.com/jeenmata/impex/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/jeenmata/impex/docs"
)

const version = "1.0.0"

//	@title			Jeen Mata Impex Storefront API
//	@version		1.0
//	@description	Public catalog, dealer portal and admin back-office for Jeen Mata Impex.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	baseLog, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, cfg.App.Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = baseLog.Sync() }()

	ctx := context.Background()

	provider, err := telemetry.NewProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log := provider.WrapLogger(baseLog)

	profiler, err := telemetry.NewProfiler(cfg.Telemetry.Profiling, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() { _ = profiler.Stop() }()
	if cfg.Telemetry.Profiling.SpanProfiles {
		provider.EnableSpanProfiles()
	}

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := telemetry.NewMetrics()

	// Database is optional. Without one every store serves its seed data.
	var db *persistence.Database
	if cfg.Database.IsConfigured() {
		db, err = persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
		if err != nil {
			log.Warn("Database unavailable, serving sample data", zap.Error(err))
			db = nil
		}
	} else {
		log.Info("No database configured, serving sample data")
	}
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database", zap.Error(err))
			}
		}()
		if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
			if err := telemetry.RegisterDBTracing(db.DB, "impex"); err != nil {
				log.Warn("Database tracing not registered", zap.Error(err))
			}
		}
		if cfg.Database.AutoMigrate {
			if err := db.AutoMigrate(); err != nil {
				log.Fatal("Failed to migrate schema", zap.Error(err))
			}
		}
	}

	storeOpts := hybrid.Options{
		FailureThreshold: cfg.Hybrid.FailureThreshold,
		OpenTimeout:      cfg.Hybrid.OpenTimeout,
		QueryTimeout:     cfg.Hybrid.QueryTimeout,
		Observer:         metrics,
		Logger:           log,
	}
	productRepo := hybrid.New[catalog.Product](catalog.TableProducts,
		persistence.RepositoryFor[catalog.Product, models.ProductModel](db, catalog.TableProducts, persistence.ProductColumns),
		mockdata.Products(), storeOpts)
	brandRepo := hybrid.New[catalog.Brand](catalog.TableBrands,
		persistence.RepositoryFor[catalog.Brand, models.BrandModel](db, catalog.TableBrands, persistence.BrandColumns),
		mockdata.Brands(), storeOpts)
	categoryRepo := hybrid.New[catalog.Category](catalog.TableCategories,
		persistence.RepositoryFor[catalog.Category, models.CategoryModel](db, catalog.TableCategories, persistence.CategoryColumns),
		mockdata.Categories(), storeOpts)
	userRepo := hybrid.New[identity.User](identity.TableUsers,
		persistence.RepositoryFor[identity.User, models.UserModel](db, identity.TableUsers, persistence.UserColumns),
		mockdata.Users(), storeOpts)
	appRepo := hybrid.New[identity.DealerApplication](identity.TableApplications,
		persistence.RepositoryFor[identity.DealerApplication, models.DealerApplicationModel](db, identity.TableApplications, persistence.ApplicationColumns),
		mockdata.Applications(), storeOpts)
	orderRepo := hybrid.New[trade.Order](trade.TableOrders,
		persistence.RepositoryFor[trade.Order, models.OrderModel](db, trade.TableOrders, persistence.OrderColumns),
		mockdata.Orders(), storeOpts)
	shipmentRepo := hybrid.New[logistics.Shipment](logistics.TableShipments,
		persistence.RepositoryFor[logistics.Shipment, models.ShipmentModel](db, logistics.TableShipments, persistence.ShipmentColumns),
		mockdata.Shipments(), storeOpts)
	settingsRepo := hybrid.New[settings.SiteSettings](settings.TableSiteSettings,
		persistence.RepositoryFor[settings.SiteSettings, models.SiteSettingsModel](db, settings.TableSiteSettings, persistence.SettingsColumns),
		mockdata.Settings(), storeOpts)
	visitRepo := hybrid.New[analytics.PageVisit](analytics.TablePageVisits,
		persistence.RepositoryFor[analytics.PageVisit, models.PageVisitModel](db, analytics.TablePageVisits, persistence.PageVisitColumns),
		mockdata.PageVisits(), storeOpts)

	// Redis backs carts, token revocation and checkout idempotency when
	// enabled
	var (
		redisClient *redis.Client
		carts       cart.Store
		revocations auth.RevocationStore
		idempotency middleware.IdempotencyStore
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, keeping carts in memory", zap.Error(err))
			redisClient = nil
		}
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		carts = cache.NewRedisCartStore(redisClient, cfg.Redis.CartTTL)
		revocations = auth.NewRedisRevocationStore(redisClient)
		idempotency = cache.NewRedisIdempotencyStore(redisClient)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		carts = cache.NewMemoryCartStore()
		revocations = auth.NewMemoryRevocationStore()
		memIdempotency := cache.NewMemoryIdempotencyStore(5 * time.Minute)
		defer func() { _ = memIdempotency.Close() }()
		idempotency = memIdempotency
	}

	// Uploaded images go to S3 when configured, otherwise to memory and are
	// served from /uploads
	var (
		objects     mediaapp.ObjectStorage
		localImages *storage.MemoryObjectStorage
		storageOK   func(context.Context) error
	)
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Warn("Object storage bucket check failed", zap.Error(err))
		}
		objects = s3Storage
		storageOK = s3Storage.EnsureBucket
	} else {
		localImages = storage.NewMemoryObjectStorage("/uploads")
		objects = localImages
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	bus := event.NewInMemoryEventBus(log)

	settingsService := settingsapp.NewService(settingsRepo, mockdata.SiteSettings, log)

	notifier := event.NewWhatsAppNotifier(settingsService, event.NewLogSender(log), log)
	bus.Subscribe(notifier, notifier.EventTypes()...)
	orderCounter := metrics.OrderEvents()
	bus.Subscribe(orderCounter, orderCounter.EventTypes()...)

	sessions := bulkfile.NewMemorySessionStore(time.Minute)
	defer sessions.Stop()

	uploadService := bulkapp.NewUploadService(sessions, productRepo, brandRepo, shipmentRepo, settingsService, bulkapp.Limits{
		MaxFileSize: cfg.Bulk.MaxFileSize,
		MaxRows:     cfg.Bulk.MaxRows,
		MaxErrors:   cfg.Bulk.MaxErrors,
		SessionTTL:  cfg.Bulk.SessionTTL,
	}, log)
	uploadService.SetRecorder(metrics)

	authService := identityapp.NewAuthService(userRepo, jwtService, revocations,
		identityapp.AuthConfig{DemoPassword: cfg.JWT.DemoPassword}, log)
	var imageReader handler.ObjectReader
	if localImages != nil {
		imageReader = localImages
	}
	mediaHandler := handler.NewMediaHandler(mediaapp.NewImageService(objects, cfg.Storage.MaxImageSize, log), imageReader)

	handlers := router.Handlers{
		Product:   handler.NewProductHandler(catalogapp.NewProductService(productRepo, bus, log)),
		Brand:     handler.NewBrandHandler(catalogapp.NewBrandService(brandRepo, productRepo, log)),
		Category:  handler.NewCategoryHandler(catalogapp.NewCategoryService(categoryRepo)),
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(identityapp.NewUserService(userRepo, revocations, cfg.JWT.RefreshTokenExpiration, log)),
		Dealer:    handler.NewDealerHandler(identityapp.NewDealerService(appRepo, userRepo, settingsService, bus, log)),
		Cart:      handler.NewCartHandler(tradeapp.NewCartService(carts, productRepo)),
		Order:     handler.NewOrderHandler(tradeapp.NewOrderService(orderRepo, userRepo, carts, bus, log)),
		Shipment:  handler.NewShipmentHandler(logisticsapp.NewShipmentService(shipmentRepo, log)),
		Settings:  handler.NewSettingsHandler(settingsService),
		Analytics: handler.NewAnalyticsHandler(analyticsapp.NewVisitService(visitRepo, settingsService, log)),
		Dashboard: handler.NewDashboardHandler(dashboardapp.NewService(productRepo, orderRepo, appRepo, userRepo)),
		Bulk:      handler.NewBulkHandler(uploadService, cfg.Bulk.MaxFileSize),
		Media:     mediaHandler,
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.App.IsProduction()

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.SecureWithConfig(securityCfg),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		metrics.Middleware(),
	)
	if provider.Enabled() {
		engine.Use(
			middleware.TracingWithConfig(middleware.TracingConfig{ServiceName: cfg.Telemetry.ServiceName, Enabled: true}),
			middleware.SpanErrorMarker(),
		)
	}
	if profiler.Enabled() {
		engine.Use(middleware.ProfilingWithConfig(middleware.DefaultProfilingConfig()))
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		engine.Use(middleware.RateLimit(limiter))
	}

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.Revocations = revocations
	jwtCfg.Logger = log
	guards := router.Guards{
		Authenticated: middleware.JWTAuthMiddlewareWithConfig(jwtCfg),
		Features:      settingsService,
		Idempotent:    middleware.Idempotency(idempotency, cfg.HTTP.IdempotencyTTL, log),
	}

	routerOpts := []router.RouterOption{router.WithMiddleware(middleware.OptionalJWTAuthMiddleware(jwtService))}
	if cfg.HTTP.Swagger.Enabled {
		routerOpts = append(routerOpts, router.WithSwagger(middleware.SwaggerProtection(cfg.HTTP.Swagger, guards.Authenticated)))
		log.Info("Swagger UI enabled", zap.String("path", "/swagger/index.html"))
	}
	router.NewRouter(engine, routerOpts...).
		Register(routeGroups(handlers, guards)...).
		Setup()

	health := handler.NewHealthHandler(version, healthChecks(db, redisClient, storageOK)...)
	engine.GET("/health", health.Health)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	if localImages != nil {
		engine.GET("/uploads/*key", mediaHandler.Serve)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := provider.Shutdown(shutdownCtx); err != nil {
		log.Error("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func routeGroups(h router.Handlers, g router.Guards) []router.RouteRegistrar {
	groups := router.Storefront(h, g)
	out := make([]router.RouteRegistrar, len(groups))
	for i, group := range groups {
		out[i] = group
	}
	return out
}

// healthChecks reports the database as optional since the stores fall back
// to sample data without it
func healthChecks(db *persistence.Database, rdb *redis.Client, storageOK func(context.Context) error) []handler.HealthCheck {
	checks := []handler.HealthCheck{{Name: "database", Optional: true}}
	if db != nil {
		checks[0].Check = func(context.Context) error { return db.Ping() }
	}

	redisCheck := handler.HealthCheck{Name: "redis"}
	if rdb != nil {
		redisCheck.Check = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	checks = append(checks, redisCheck)

	return append(checks, handler.HealthCheck{Name: "storage", Optional: true, Check: storageOK})
}
