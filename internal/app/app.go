package app

import (
	"fmt"

	"deenha/internal/catalog"
	"deenha/internal/config"
	"deenha/internal/handlers"
	"deenha/internal/middleware"
	"deenha/internal/models"
	"deenha/internal/repositories"
	"deenha/internal/services"
	"deenha/internal/session"
	"deenha/pkg/imagestore"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options are the external resources the storefront runs on.
type Options struct {
	Config    config.Config
	DB        *gorm.DB
	KV        repositories.KVStore
	Publisher services.HandoffPublisher // nil disables handoff events
	Images    imagestore.Store
	Logger    *zap.Logger
	// RequestLog enables Fiber's request logger.
	RequestLog bool
}

// App is a wired storefront.
type App struct {
	Fiber    *fiber.App
	Catalog  *catalog.Store
	Sessions *session.Manager
	Auth     *services.AuthService
	Products repositories.ProductRepository
	Posts    repositories.PostRepository
	Users    repositories.UserRepository
}

// Migrate creates or updates the storefront tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}, &models.InstagramPost{}, &models.User{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// New wires repositories, services and handlers into a Fiber app. The
// catalog starts empty; call Catalog.Refresh to load it.
func New(opts Options) *App {
	cfg := opts.Config
	log := opts.Logger

	productRepo := repositories.NewGORMProductRepository(opts.DB)
	postRepo := repositories.NewGORMPostRepository(opts.DB)
	userRepo := repositories.NewGORMUserRepository(opts.DB)

	store := catalog.NewStore(productRepo, postRepo, log.Named("catalog"),
		catalog.WithFeedLimit(cfg.FeedLimit),
		catalog.WithRetry(cfg.CatalogRetryAttempts, cfg.CatalogRetryInterval),
	)
	sessions := session.NewManager(opts.KV, log.Named("session"))

	authService := services.NewAuthService(userRepo, opts.KV, cfg.JWTSecret, cfg.TokenDuration, log.Named("auth"))
	productService := services.NewProductService(productRepo, store, log.Named("products"))
	feedService := services.NewFeedService(postRepo, store, log.Named("feed"))
	checkoutService := services.NewCheckoutService(cfg.WhatsAppPhone, opts.Publisher, log.Named("checkout"))

	shopHandler := handlers.NewShopHandler(store, log)
	cartHandler := handlers.NewCartHandler(store, log)
	wishlistHandler := handlers.NewWishlistHandler(store)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, sessions)
	authHandler := handlers.NewAuthHandler(authService, log)
	productHandler := handlers.NewProductHandler(productService, opts.Images, log)
	feedHandler := handlers.NewFeedHandler(feedService, log)
	healthHandler := handlers.NewHealthHandler(store, sessions, opts.Publisher != nil)

	f := fiber.New(fiber.Config{AppName: "deenha"})
	f.Use(recover.New())
	// Browser clients on another origin read the issued session id.
	f.Use(cors.New(cors.Config{ExposeHeaders: middleware.SessionHeader}))
	if opts.RequestLog {
		f.Use(logger.New())
	}
	if local, ok := opts.Images.(*imagestore.LocalStore); ok {
		f.Static(cfg.ImageURLBase, local.Dir())
	}

	healthHandler.RegisterRoutes(f)

	apiV1 := f.Group("/api/v1")
	shopHandler.RegisterRoutes(apiV1)

	limiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst)
	authHandler.RegisterRoutes(apiV1, limiter.Handler())

	// Group middleware applies to every path under the group prefix, so
	// session and role guards are attached per prefix or per route.
	sessionRequired := middleware.SessionRequired(sessions)
	cartHandler.RegisterRoutes(apiV1, sessionRequired)
	wishlistHandler.RegisterRoutes(apiV1, sessionRequired)
	checkoutHandler.RegisterRoutes(apiV1, sessionRequired)

	authRequired := middleware.AuthRequired(authService)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	staff := apiV1.Group("/admin", authRequired, middleware.RequireRole(models.RoleAdmin, models.RoleEmployee))
	productHandler.RegisterReadRoutes(staff)
	feedHandler.RegisterReadRoutes(staff)
	productHandler.RegisterWriteRoutes(staff, adminOnly)
	feedHandler.RegisterWriteRoutes(staff, adminOnly)
	authHandler.RegisterAdminRoutes(staff, adminOnly)

	shopHandler.RegisterAdminRoutes(apiV1, authRequired, adminOnly)

	return &App{
		Fiber:    f,
		Catalog:  store,
		Sessions: sessions,
		Auth:     authService,
		Products: productRepo,
		Posts:    postRepo,
		Users:    userRepo,
	}
}
