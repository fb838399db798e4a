package cart

import (
	"time"

	"github.com/clothora/backend/internal/domain/cart"
	"github.com/clothora/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest represents a request to add a product to the cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"max=20"`
	Color     string    `json:"color" binding:"max=50"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents a request to change an entry's quantity
type UpdateCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"max=20"`
	Color     string    `json:"color" binding:"max=50"`
	Quantity  int64     `json:"quantity" binding:"min=0"`
}

// RemoveCartItemRequest identifies the entry to remove
type RemoveCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"max=20"`
	Color     string    `json:"color" binding:"max=50"`
}

// CartItemResponse represents a cart entry enriched with catalog data
type CartItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	ImageURL    string          `json:"image_url,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	InStock     bool            `json:"in_stock"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	Items     []CartItemResponse `json:"items"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ToCartResponse converts a domain Cart enriched with its products.
// Prices come from the snapshot captured when the entry was added; the
// catalog only contributes display data and current availability.
func ToCartResponse(c *cart.Cart, products map[uuid.UUID]*catalog.Product) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))

	for _, item := range c.Items {
		resp := CartItemResponse{
			ProductID: item.ProductID,
			Size:      item.Size,
			Color:     item.Color,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Amount:    item.Amount(),
		}
		if product, ok := products[item.ProductID]; ok {
			resp.ProductName = product.Name
			resp.ImageURL = product.ImageFor(item.Color)
			resp.InStock = product.InStock(item.Quantity)
		}
		items = append(items, resp)
	}

	return CartResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     items,
		Subtotal:  c.Subtotal().Amount(),
		UpdatedAt: c.UpdatedAt,
	}
}
