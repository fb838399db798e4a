package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/clothora/backend/internal/application/cart"
	catalogapp "github.com/clothora/backend/internal/application/catalog"
	identityapp "github.com/clothora/backend/internal/application/identity"
	orderapp "github.com/clothora/backend/internal/application/order"
	"github.com/clothora/backend/internal/domain/shared"
	"github.com/clothora/backend/internal/infrastructure/auth"
	"github.com/clothora/backend/internal/infrastructure/cache"
	"github.com/clothora/backend/internal/infrastructure/config"
	"github.com/clothora/backend/internal/infrastructure/email"
	"github.com/clothora/backend/internal/infrastructure/logger"
	"github.com/clothora/backend/internal/infrastructure/payment"
	"github.com/clothora/backend/internal/infrastructure/persistence"
	"github.com/clothora/backend/internal/infrastructure/storage"
	"github.com/clothora/backend/internal/interfaces/http/handler"
	"github.com/clothora/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Clothora backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Object storage for product images
	imageStorage, err := storage.NewS3Storage(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Payment gateway
	gateway := payment.NewRazorpayGateway(cfg.Payment, log)

	// Application services
	productService := catalogapp.NewProductService(productRepo, imageStorage)
	cartService := cartapp.NewCartService(cartRepo, productRepo)
	orderService := orderapp.NewOrderService(orderRepo, productRepo, userRepo, log)
	paymentService := orderapp.NewPaymentService(orderRepo, gateway, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo)

	// Product read cache (optional)
	if cfg.Redis.Enabled {
		productCache := cache.NewRedisProductCache(cfg.Redis, log)
		if err := productCache.Ping(context.Background()); err != nil {
			log.Warn("Redis unreachable, continuing without product cache", zap.Error(err))
		} else {
			productService.SetCache(productCache)
			defer func() {
				_ = productCache.Close()
			}()
			log.Info("Product cache enabled", zap.String("addr", cfg.Redis.Addr()))
		}
	}

	// Event bus and cross-context handlers
	eventBus := shared.NewInMemoryEventBus()

	var mailer orderapp.Mailer
	if cfg.Email.Enabled {
		mailer = email.NewSendGridMailer(cfg.Email, log)
	} else {
		mailer = email.NopMailer{}
	}
	eventBus.Subscribe(orderapp.NewOrderPlacedHandler(userRepo, mailer, log))
	eventBus.Subscribe(orderapp.NewOrderShippedHandler(userRepo, mailer, log))

	productService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	paymentService.SetEventPublisher(eventBus)

	// HTTP layer
	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(productService),
		Cart:    handler.NewCartHandler(cartService),
		Order:   handler.NewOrderHandler(orderService, paymentService),
		Webhook: handler.NewPaymentWebhookHandler(paymentService, log),
		User:    handler.NewUserHandler(userService),
		System:  handler.NewSystemHandler(db, productService, orderService, userService),
	}
	engine := router.New(cfg, log, jwtService, handlers)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
