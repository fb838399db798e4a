package router

import (
	"github.com/clothora/backend/internal/infrastructure/auth"
	"github.com/clothora/backend/internal/infrastructure/config"
	"github.com/clothora/backend/internal/infrastructure/logger"
	"github.com/clothora/backend/internal/interfaces/http/handler"
	"github.com/clothora/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups everything the router needs to wire
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Webhook *handler.PaymentWebhookHandler
	User    *handler.UserHandler
	System  *handler.SystemHandler
}

// New builds the gin engine with all middleware and routes registered
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodySizeLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	registerPublicRoutes(api, h)
	registerUserRoutes(api, jwtService, h)
	registerAdminRoutes(api, jwtService, h)

	return engine
}

// registerPublicRoutes wires endpoints that require no authentication
func registerPublicRoutes(api *gin.RouterGroup, h Handlers) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.GetByID)
	}

	// The gateway authenticates itself through the body signature
	api.POST("/payments/webhook", h.Webhook.Handle)
}

// registerUserRoutes wires endpoints for authenticated customers
func registerUserRoutes(api *gin.RouterGroup, jwtService *auth.JWTService, h Handlers) {
	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(jwtService))

	authed.GET("/auth/me", h.Auth.Me)

	cart := authed.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items", h.Cart.UpdateItem)
		cart.DELETE("/items", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.Clear)
	}

	orders := authed.Group("/orders")
	{
		orders.POST("", h.Order.Place)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.GetByID)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}

	payments := authed.Group("/payments")
	{
		payments.POST("/intent", h.Order.CreatePaymentIntent)
		payments.POST("/reconcile", h.Order.ReconcilePayment)
	}
}

// registerAdminRoutes wires endpoints restricted to the admin role
func registerAdminRoutes(api *gin.RouterGroup, jwtService *auth.JWTService, h Handlers) {
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(jwtService), middleware.RequireAdmin())

	products := admin.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/images", h.Product.UploadImage)
	}

	orders := admin.Group("/orders")
	{
		orders.GET("", h.Order.ListAll)
		orders.PUT("/:id/status", h.Order.SetDeliveryStatus)
		orders.DELETE("/:id", h.Order.Delete)
	}

	users := admin.Group("/users")
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.GetByID)
		users.POST("/:id/promote", h.User.Promote)
		users.DELETE("/:id", h.User.Delete)
	}

	admin.GET("/stats", h.System.Stats)
}
