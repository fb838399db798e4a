package order

import (
	"time"

	"github.com/clothora/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddressRequest carries a shipping address in placement requests.
// All four core fields are required.
type AddressRequest struct {
	Street     string `json:"street" binding:"required,max=500"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"required,max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"max=100"`
}

// PlaceOrderItemRequest is one requested line in a placement
type PlaceOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"max=20"`
	Color     string    `json:"color" binding:"max=50"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest represents a request to place an order.
// TotalAmount is the total the client displayed to the customer; it is
// verified against the server-computed total, which is authoritative.
type PlaceOrderRequest struct {
	Items           []PlaceOrderItemRequest `json:"items" binding:"required,dive"`
	ShippingAddress AddressRequest          `json:"shipping_address" binding:"required"`
	PaymentMethod   string                  `json:"payment_method" binding:"required,oneof=COD ONLINE"`
	TotalAmount     decimal.Decimal         `json:"total_amount" binding:"required"`
}

// CancelOrderRequest represents an owner's cancellation request
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// SetDeliveryStatusRequest represents an admin delivery transition
type SetDeliveryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PROCESSING SHIPPED DELIVERED CANCELLED"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	ImageURL    string          `json:"image_url,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// AddressResponse represents a shipping address in API responses
type AddressResponse struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	UserID          uuid.UUID           `json:"user_id"`
	Items           []OrderItemResponse `json:"items"`
	ShippingAddress AddressResponse     `json:"shipping_address"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentStatus   string              `json:"payment_status"`
	DeliveryStatus  string              `json:"delivery_status"`
	PaymentIntentID string              `json:"payment_intent_id,omitempty"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListFilter represents filter options for order listings
type OrderListFilter struct {
	DeliveryStatus string `form:"delivery_status" binding:"omitempty,oneof=PROCESSING SHIPPED DELIVERED CANCELLED"`
	PaymentStatus  string `form:"payment_status" binding:"omitempty,oneof=PENDING PAID FAILED REFUNDED"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateIntentResponse represents a created gateway intent for checkout
type CreateIntentResponse struct {
	OrderID        uuid.UUID `json:"order_id"`
	IntentID       string    `json:"intent_id"`
	AmountSubunits int64     `json:"amount_subunits"`
	Currency       string    `json:"currency"`
	KeyID          string    `json:"key_id"`
}

// ReconcileRequest asks the gateway for the authoritative payment state
type ReconcileRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Size:        item.Size,
			Color:       item.Color,
			ImageURL:    item.ImageURL,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Amount:      item.Amount,
		}
	}

	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Items:       items,
		ShippingAddress: AddressResponse{
			Street:     o.ShippingAddress.Street(),
			City:       o.ShippingAddress.City(),
			State:      o.ShippingAddress.State(),
			PostalCode: o.ShippingAddress.PostalCode(),
			Country:    o.ShippingAddress.Country(),
		},
		TotalAmount:     o.TotalAmount,
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		DeliveryStatus:  string(o.DeliveryStatus),
		PaymentIntentID: o.PaymentIntentID,
		PaidAt:          o.PaidAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain Orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
