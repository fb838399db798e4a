package order

import (
	"github.com/clothora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced                = "OrderPlaced"
	EventTypeOrderPaid                  = "OrderPaid"
	EventTypeOrderCancelled             = "OrderCancelled"
	EventTypeOrderDeliveryStatusChanged = "OrderDeliveryStatusChanged"
)

// OrderPlacedEvent is published when an order is placed
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	UserID        uuid.UUID       `json:"user_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		PaymentMethod:   o.PaymentMethod,
		ItemCount:       len(o.Items),
	}
}

// OrderPaidEvent is published when a payment is captured for an order
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      uuid.UUID       `json:"user_id"`
	PaymentID   string          `json:"payment_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		PaymentID:       o.PaymentID,
		TotalAmount:     o.TotalAmount,
	}
}

// OrderCancelledEvent is published when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      uuid.UUID `json:"user_id"`
	Reason      string    `json:"reason,omitempty"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Reason:          o.CancelReason,
	}
}

// OrderDeliveryStatusChangedEvent is published on delivery state transitions
type OrderDeliveryStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID      `json:"order_id"`
	OrderNumber string         `json:"order_number"`
	UserID      uuid.UUID      `json:"user_id"`
	OldStatus   DeliveryStatus `json:"old_status"`
	NewStatus   DeliveryStatus `json:"new_status"`
}

// NewOrderDeliveryStatusChangedEvent creates a new OrderDeliveryStatusChangedEvent
func NewOrderDeliveryStatusChangedEvent(o *Order, oldStatus DeliveryStatus) *OrderDeliveryStatusChangedEvent {
	return &OrderDeliveryStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDeliveryStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		OldStatus:       oldStatus,
		NewStatus:       o.DeliveryStatus,
	}
}
