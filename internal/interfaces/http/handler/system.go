package handler

import (
	"net/http"

	catalogapp "github.com/clothora/backend/internal/application/catalog"
	identityapp "github.com/clothora/backend/internal/application/identity"
	orderapp "github.com/clothora/backend/internal/application/order"
	"github.com/clothora/backend/internal/infrastructure/persistence"
	"github.com/clothora/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and admin dashboard endpoints
type SystemHandler struct {
	BaseHandler
	db             *persistence.Database
	productService *catalogapp.ProductService
	orderService   *orderapp.OrderService
	userService    *identityapp.UserService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(
	db *persistence.Database,
	productService *catalogapp.ProductService,
	orderService *orderapp.OrderService,
	userService *identityapp.UserService,
) *SystemHandler {
	return &SystemHandler{
		db:             db,
		productService: productService,
		orderService:   orderService,
		userService:    userService,
	}
}

// Health reports service liveness and database connectivity
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			dto.ErrCodeInternal, "Database unreachable"))
		return
	}

	h.Success(c, gin.H{"status": "ok"})
}

// StatsResponse summarizes store activity for the admin dashboard
type StatsResponse struct {
	TotalProducts    int64 `json:"total_products"`
	TotalOrders      int64 `json:"total_orders"`
	ProcessingOrders int64 `json:"processing_orders"`
	TotalUsers       int64 `json:"total_users"`
}

// Stats returns aggregate counts for the admin dashboard
func (h *SystemHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.productService.Count(ctx, "")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	orders, err := h.orderService.Count(ctx, "")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	processing, err := h.orderService.Count(ctx, "PROCESSING")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	users, err := h.userService.Count(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, StatsResponse{
		TotalProducts:    products,
		TotalOrders:      orders,
		ProcessingOrders: processing,
		TotalUsers:       users,
	})
}
