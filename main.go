// @title Modeva Storefront API
// @version 1.0
// @description Storefront backend for the Modeva shop: catalog, session cart, favorites, customer accounts and checkout hand-off over the commerce backend.
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/auth_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/category_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/checkout_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/favorites_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/filter_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/menu_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/product_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/search_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/user_controller/address_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/user_controller/order_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/user_controller/profile_controller"
	_ "github.com/Modeva-Ecommerce/modeva-storefront/docs"
	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/routes/ecommerce_routes"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/Modeva-Ecommerce/modeva-storefront/services/commerce"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores/persist"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

const (
	authRateLimit   = 10
	authRateWindow  = time.Minute
	shutdownTimeout = 20 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("❌ Invalid configuration")
	}
	log := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis backs store persistence and rate limiting. Without it sessions
	// live in process memory only.
	var (
		backend persist.Backend = persist.NewMemoryBackend()
		limiter gin.HandlerFunc
	)
	rdb, err := config.ConnectRedis(cfg, log)
	if err != nil {
		log.WithError(err).Warn("⚠️  Redis unavailable, using in-memory session storage without rate limiting")
	} else {
		defer rdb.Close()
		backend = persist.NewRedisBackend(rdb)
		limiter = middleware.RateLimiter(rdb, authRateLimit, authRateWindow)
	}

	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("❌ Database connection failed")
	}
	if db != nil {
		defer db.Close(log)
	}

	client, err := commerce.New(commerce.Config{
		StoreDomain:       cfg.ShopifyStoreDomain,
		StorefrontToken:   cfg.ShopifyStorefrontToken,
		AdminToken:        cfg.ShopifyAdminToken,
		APIVersion:        cfg.ShopifyAPIVersion,
		RequestsPerSecond: cfg.GatewayRPS,
		Logger:            log,
	})
	if err != nil {
		log.WithError(err).Fatal("❌ Commerce client setup failed")
	}
	log.WithField("store", cfg.ShopifyStoreDomain).Info("✅ Commerce client initialized")

	images, err := services.NewImageService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.ImageWidth, log)
	if err != nil {
		log.WithError(err).Fatal("❌ Failed to initialize Cloudinary")
	}

	jwtSvc, err := services.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		log.WithError(err).Fatal("❌ Failed to initialize JWT service")
	}
	log.Info("✅ JWT Service initialized")

	google, err := config.InitGoogleOAuth(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("❌ Google OAuth setup failed, Google sign-in disabled")
		google = nil
	}

	registry := stores.NewRegistry(client, backend, log, stores.Options{
		PersistTTL:       cfg.PersistTTL,
		LinkedSessionTTL: cfg.LinkedSessionTTL,
		MenuTTL:          cfg.MenuTTL,
	})

	var (
		repo     services.PendingOrderRepository
		holds    services.HoldReleaser
		execer   utils.Execer
		mailer   services.InstructionMailer
		pending  *services.PendingOrderService
		resendCl = services.NewResendClient(cfg.ResendAPIKey, cfg.ResendFromEmail, log)
	)
	if db != nil {
		repo = services.NewGormPendingOrderRepository(db.Gorm)
		execer = db.Pool
	}
	if resendCl != nil {
		mailer = resendCl
	}
	pending = services.NewPendingOrderService(client, repo, mailer, services.PendingOrderConfig{
		Hold:                cfg.PendingOrderHold,
		BankTransferDetails: cfg.BankTransferDetails,
	}, log)
	if repo != nil {
		holds = pending
	}

	scheduler, err := services.NewScheduler(holds, registry, cfg.SessionIdleTTL, log)
	if err != nil {
		log.WithError(err).Fatal("❌ Scheduler setup failed")
	}
	scheduler.Start()

	// Controllers
	product_controller.Init(client, images)
	filter_controller.Init(client)
	category_controller.Init(services.NewCatalogService(client, log))
	search_controller.Init(client, images)
	menu_controller.Init(registry.Menus, log)
	favorites_controller.Init(images)
	checkout_controller.Init(pending, log)
	profile_controller.Init(client)
	order_controller.Init(client)
	address_controller.Init(client)
	auth_controller.Init(auth_controller.Deps{
		JWT:         jwtSvc,
		Google:      google,
		Tracker:     utils.NewLoginTracker(execer, log),
		Recoverer:   client,
		FrontendURL: cfg.FrontendURL(),
		Secure:      cfg.IsProduction(),
		Log:         log,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length", middleware.RequestIDHeader},
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": registry.Len()})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	session := middleware.SessionMiddleware(registry, cfg.IsProduction())
	ecommerce_routes.SetupStorefrontRoutes(api)
	ecommerce_routes.SetupSessionRoutes(api, session)
	ecommerce_routes.SetupAuthRoutes(api, session, limiter)
	ecommerce_routes.SetupUserRoutes(api, middleware.AuthMiddleware(jwtSvc))

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("🚀 Server is running on http://localhost:%s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("❌ Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("❌ Graceful shutdown failed")
	}
	scheduler.Stop(shutdownCtx)
	pending.Wait()
	log.Info("👋 Bye")
}
