package handler

import (
	orderapp "github.com/clothora/backend/internal/application/order"
	"github.com/clothora/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles order placement, queries, and lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	orderService   *orderapp.OrderService
	paymentService *orderapp.PaymentService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService, paymentService *orderapp.PaymentService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		paymentService: paymentService,
	}
}

// CreatePaymentIntentRequest identifies the order to create an intent for
type CreatePaymentIntentRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}

// Place creates an order from the request lines and decrements stock
func (h *OrderHandler) Place(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Place(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// List returns the authenticated user's orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.orderService.ListForUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single order. Owners see their own orders; admins see any.
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), userID, middleware.IsAdmin(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel lets the owner cancel an order that is still processing
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), userID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// CreatePaymentIntent creates or reuses a gateway intent for an online order
func (h *OrderHandler) CreatePaymentIntent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	intent, err := h.paymentService.CreateIntent(c.Request.Context(), userID, req.OrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, intent)
}

// ReconcilePayment queries the gateway for the authoritative payment state
// of the caller's order and applies it.
func (h *OrderHandler) ReconcilePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderapp.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.paymentService.Reconcile(c.Request.Context(), userID, req.OrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListAll returns all orders for administrators
func (h *OrderHandler) ListAll(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// SetDeliveryStatus moves an order through the delivery lifecycle
func (h *OrderHandler) SetDeliveryStatus(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.SetDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.SetDeliveryStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete removes an order record
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
