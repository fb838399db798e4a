package handler

import (
	cartapp "github.com/clothora/backend/internal/application/cart"
	"github.com/gin-gonic/gin"
)

// CartHandler handles the authenticated user's cart endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the current user's cart, creating an empty one on first use
func (h *CartHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem adds a product variant to the cart, merging duplicates
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req cartapp.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// UpdateItem sets an entry's quantity; zero removes the entry
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req cartapp.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem removes a single variant entry from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req cartapp.RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.Clear(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}
