package app

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	adminAPI "marketplace_backend/internal/api/admin"
	authAPI "marketplace_backend/internal/api/auth"
	cartAPI "marketplace_backend/internal/api/cart"
	catalogAPI "marketplace_backend/internal/api/catalog"
	"marketplace_backend/internal/api/middleware"
	notificationAPI "marketplace_backend/internal/api/notification"
	orderAPI "marketplace_backend/internal/api/order"
	vendorAPI "marketplace_backend/internal/api/vendor"
	"marketplace_backend/internal/config"
	"marketplace_backend/internal/config/env"
	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository"
	"marketplace_backend/internal/repository/auth_repo"
	"marketplace_backend/internal/repository/cart_repo"
	"marketplace_backend/internal/repository/catalog_repo"
	"marketplace_backend/internal/repository/coupon_repo"
	"marketplace_backend/internal/repository/notification_repo"
	"marketplace_backend/internal/repository/order_repo"
	"marketplace_backend/internal/repository/review_repo"
	"marketplace_backend/internal/repository/settings_repo"
	"marketplace_backend/internal/repository/stats_repo"
	"marketplace_backend/internal/repository/user_repo"
	"marketplace_backend/internal/service"
	adminServ "marketplace_backend/internal/service/admin"
	authServ "marketplace_backend/internal/service/auth"
	cartServ "marketplace_backend/internal/service/cart"
	catalogServ "marketplace_backend/internal/service/catalog"
	notificationServ "marketplace_backend/internal/service/notification"
	orderServ "marketplace_backend/internal/service/order"
	"marketplace_backend/internal/service/pricing"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Configs
	jwtCfg     config.JWTConfig
	pricingCfg config.PricingConfig
	httpCfg    config.HTTPConfig

	// Repositories
	userRepo         repository.UserRepository
	authRepo         repository.AuthRepository
	catalogRepo      repository.CatalogRepository
	cartRepo         repository.CartRepository
	orderRepo        repository.OrderRepository
	notificationRepo repository.NotificationRepository
	couponRepo       repository.CouponRepository
	reviewRepo       repository.ReviewRepository
	settingsRepo     repository.SettingsRepository
	statsRepo        repository.StatsRepository

	// Services
	pricingCalc      *pricing.Calculator
	authService      service.AuthService
	catalogService   service.CatalogService
	cartService      service.CartService
	orderService     service.OrderService
	notificationServ service.NotificationService
	adminService     service.AdminService

	// Handlers
	authHand         *authAPI.Handler
	catalogHand      *catalogAPI.Handler
	cartHand         *cartAPI.Handler
	orderHand        *orderAPI.Handler
	notificationHand *notificationAPI.Handler
	vendorHand       *vendorAPI.Handler
	adminHand        *adminAPI.Handler

	// Router
	router chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) PricingCfg() config.PricingConfig {
	if sp.pricingCfg == nil {
		cfg, err := env.NewPricingConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get pricing config: " + err.Error())
		}
		sp.pricingCfg = cfg
	}
	return sp.pricingCfg
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) CatalogRepo(ctx context.Context) repository.CatalogRepository {
	if sp.catalogRepo == nil {
		sp.catalogRepo = catalog_repo.NewCatalogRepository(sp.DBClient(ctx))
	}
	return sp.catalogRepo
}

func (sp *ServiceProvider) CartRepo(ctx context.Context) repository.CartRepository {
	if sp.cartRepo == nil {
		sp.cartRepo = cart_repo.NewCartRepository(sp.DBClient(ctx))
	}
	return sp.cartRepo
}

func (sp *ServiceProvider) OrderRepo(ctx context.Context) repository.OrderRepository {
	if sp.orderRepo == nil {
		sp.orderRepo = order_repo.NewOrderRepository(sp.DBClient(ctx))
	}
	return sp.orderRepo
}

func (sp *ServiceProvider) NotificationRepo(ctx context.Context) repository.NotificationRepository {
	if sp.notificationRepo == nil {
		sp.notificationRepo = notification_repo.NewNotificationRepository(sp.DBClient(ctx))
	}
	return sp.notificationRepo
}

func (sp *ServiceProvider) CouponRepo(ctx context.Context) repository.CouponRepository {
	if sp.couponRepo == nil {
		sp.couponRepo = coupon_repo.NewCouponRepository(sp.DBClient(ctx))
	}
	return sp.couponRepo
}

func (sp *ServiceProvider) ReviewRepo(ctx context.Context) repository.ReviewRepository {
	if sp.reviewRepo == nil {
		sp.reviewRepo = review_repo.NewReviewRepository(sp.DBClient(ctx))
	}
	return sp.reviewRepo
}

func (sp *ServiceProvider) SettingsRepo(ctx context.Context) repository.SettingsRepository {
	if sp.settingsRepo == nil {
		sp.settingsRepo = settings_repo.NewSettingsRepository(sp.DBClient(ctx))
	}
	return sp.settingsRepo
}

func (sp *ServiceProvider) StatsRepo() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository()
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) PricingCalculator() *pricing.Calculator {
	if sp.pricingCalc == nil {
		sp.pricingCalc = pricing.NewCalculator(sp.PricingCfg())
	}
	return sp.pricingCalc
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authService == nil {
		sp.authService = authServ.NewService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.JWTCfg(),
		)
	}
	return sp.authService
}

func (sp *ServiceProvider) CatalogService(ctx context.Context) service.CatalogService {
	if sp.catalogService == nil {
		sp.catalogService = catalogServ.NewService(sp.CatalogRepo(ctx), sp.ReviewRepo(ctx))
	}
	return sp.catalogService
}

func (sp *ServiceProvider) CartService(ctx context.Context) service.CartService {
	if sp.cartService == nil {
		sp.cartService = cartServ.NewService(
			sp.CartRepo(ctx),
			sp.CatalogRepo(ctx),
			sp.CouponRepo(ctx),
			sp.PricingCalculator(),
		)
	}
	return sp.cartService
}

func (sp *ServiceProvider) OrderService(ctx context.Context) service.OrderService {
	if sp.orderService == nil {
		sp.orderService = orderServ.NewService(
			sp.TXManager(ctx),
			sp.OrderRepo(ctx),
			sp.CartRepo(ctx),
			sp.CatalogRepo(ctx),
			sp.CouponRepo(ctx),
			sp.NotificationRepo(ctx),
			sp.StatsRepo(),
			sp.PricingCalculator(),
		)
	}
	return sp.orderService
}

func (sp *ServiceProvider) NotificationService(ctx context.Context) service.NotificationService {
	if sp.notificationServ == nil {
		sp.notificationServ = notificationServ.NewService(sp.NotificationRepo(ctx))
	}
	return sp.notificationServ
}

func (sp *ServiceProvider) AdminService(ctx context.Context) service.AdminService {
	if sp.adminService == nil {
		sp.adminService = adminServ.NewService(
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.CatalogRepo(ctx),
			sp.CouponRepo(ctx),
			sp.ReviewRepo(ctx),
			sp.SettingsRepo(ctx),
		)
	}
	return sp.adminService
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) CatalogHandler(ctx context.Context) *catalogAPI.Handler {
	if sp.catalogHand == nil {
		sp.catalogHand = catalogAPI.NewHandler(catalogAPI.HandlerDeps{Serv: sp.CatalogService(ctx)})
	}
	return sp.catalogHand
}

func (sp *ServiceProvider) CartHandler(ctx context.Context) *cartAPI.Handler {
	if sp.cartHand == nil {
		sp.cartHand = cartAPI.NewHandler(cartAPI.HandlerDeps{
			Serv:     sp.CartService(ctx),
			Currency: sp.PricingCfg().Currency(),
		})
	}
	return sp.cartHand
}

func (sp *ServiceProvider) OrderHandler(ctx context.Context) *orderAPI.Handler {
	if sp.orderHand == nil {
		sp.orderHand = orderAPI.NewHandler(orderAPI.HandlerDeps{
			Serv:     sp.OrderService(ctx),
			Currency: sp.PricingCfg().Currency(),
		})
	}
	return sp.orderHand
}

func (sp *ServiceProvider) NotificationHandler(ctx context.Context) *notificationAPI.Handler {
	if sp.notificationHand == nil {
		sp.notificationHand = notificationAPI.NewHandler(notificationAPI.HandlerDeps{
			Serv: sp.NotificationService(ctx),
		})
	}
	return sp.notificationHand
}

func (sp *ServiceProvider) VendorHandler(ctx context.Context) *vendorAPI.Handler {
	if sp.vendorHand == nil {
		sp.vendorHand = vendorAPI.NewHandler(vendorAPI.HandlerDeps{
			CatalogServ: sp.CatalogService(ctx),
			OrderServ:   sp.OrderService(ctx),
			Currency:    sp.PricingCfg().Currency(),
		})
	}
	return sp.vendorHand
}

func (sp *ServiceProvider) AdminHandler(ctx context.Context) *adminAPI.Handler {
	if sp.adminHand == nil {
		sp.adminHand = adminAPI.NewHandler(adminAPI.HandlerDeps{Serv: sp.AdminService(ctx)})
	}
	return sp.adminHand
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		authed := middleware.Authenticate(sp.JWTCfg())

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh-token", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)

			rr.Group(func(rr chi.Router) {
				rr.Use(authed)
				rr.Get("/me", authHandler.Me)
				rr.Put("/update-profile", authHandler.UpdateProfile)
			})
		})

		// Storefront endpoints
		catalogHandler := sp.CatalogHandler(ctx)
		r.Route("/products", func(rr chi.Router) {
			rr.Get("/", catalogHandler.List)
			rr.Get("/{id}", catalogHandler.Get)
			rr.Get("/{id}/reviews", catalogHandler.Reviews)

			rr.Group(func(rr chi.Router) {
				rr.Use(authed)
				rr.Post("/{id}/reviews", catalogHandler.SubmitReview)
			})
		})
		r.Get("/categories", catalogHandler.Categories)

		// Cart endpoints
		cartHandler := sp.CartHandler(ctx)
		r.Route("/cart", func(rr chi.Router) {
			rr.Use(authed)
			rr.Get("/", cartHandler.Get)
			rr.Post("/items", cartHandler.AddItem)
			rr.Put("/items/{itemID}", cartHandler.UpdateItem)
			rr.Delete("/items/{itemID}", cartHandler.RemoveItem)
			rr.Delete("/", cartHandler.Clear)
			rr.Post("/coupon", cartHandler.ApplyCoupon)
		})

		// Order endpoints
		orderHandler := sp.OrderHandler(ctx)
		r.Route("/orders", func(rr chi.Router) {
			rr.Use(authed)
			rr.Post("/", orderHandler.Checkout)
			rr.Get("/", orderHandler.List)
			rr.Get("/{id}", orderHandler.Get)
			rr.Post("/{id}/cancel", orderHandler.Cancel)
			rr.Post("/{id}/confirm-payment", orderHandler.ConfirmPayment)
		})

		// Notification endpoints
		notificationHandler := sp.NotificationHandler(ctx)
		r.Route("/notifications", func(rr chi.Router) {
			rr.Use(authed)
			rr.Get("/", notificationHandler.List)
			rr.Patch("/{id}/read", notificationHandler.MarkRead)
			rr.Patch("/read-all", notificationHandler.MarkAllRead)
			rr.Delete("/{id}", notificationHandler.Delete)
		})

		// Vendor back-office endpoints
		vendorHandler := sp.VendorHandler(ctx)
		r.Route("/vendors", func(rr chi.Router) {
			rr.Use(authed)
			rr.Use(middleware.RequireRole(model.RoleVendor, model.RoleAdmin))
			rr.Get("/products", vendorHandler.ListProducts)
			rr.Post("/products", vendorHandler.CreateProduct)
			rr.Put("/products/{id}", vendorHandler.UpdateProduct)
			rr.Delete("/products/{id}", vendorHandler.ArchiveProduct)
			rr.Get("/orders", vendorHandler.ListOrders)
			rr.Post("/orders/{id}/ship", vendorHandler.Ship)
			rr.Get("/stats", vendorHandler.Stats)
		})

		// Admin console endpoints
		adminHandler := sp.AdminHandler(ctx)
		r.Route("/admin", func(rr chi.Router) {
			rr.Use(authed)
			rr.Use(middleware.RequireRole(model.RoleAdmin))
			rr.Get("/users", adminHandler.ListUsers)
			rr.Put("/users/{id}/active", adminHandler.SetUserActive)
			rr.Post("/users/{id}/approve-vendor", adminHandler.ApproveVendor)
			rr.Post("/categories", adminHandler.CreateCategory)
			rr.Put("/categories/{id}", adminHandler.UpdateCategory)
			rr.Delete("/categories/{id}", adminHandler.DeleteCategory)
			rr.Post("/coupons", adminHandler.CreateCoupon)
			rr.Get("/coupons", adminHandler.ListCoupons)
			rr.Put("/coupons/{id}/active", adminHandler.SetCouponActive)
			rr.Get("/reviews/pending", adminHandler.ListPendingReviews)
			rr.Post("/reviews/{id}/moderate", adminHandler.ModerateReview)
			rr.Get("/settings", adminHandler.Settings)
			rr.Put("/settings", adminHandler.SetSetting)
		})

		sp.router = r
	}

	return sp.router
}
