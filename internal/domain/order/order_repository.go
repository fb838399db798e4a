package order

import (
	"context"

	"github.com/clothora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID, including items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByPaymentIntentID finds the order attached to a gateway intent
	FindByPaymentIntentID(ctx context.Context, intentID string) (*Order, error)

	// FindByUserID finds all orders for a user, newest first
	FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Place atomically persists a new order, decrements product stock for
	// every line item, and clears the user's cart. Returns
	// shared.ErrConcurrencyConflict when a conditional stock decrement
	// matched no row, leaving nothing applied.
	Place(ctx context.Context, o *Order) error

	// Save updates an existing order
	Save(ctx context.Context, o *Order) error

	// SaveWithLock updates an order with optimistic version checking
	SaveWithLock(ctx context.Context, o *Order) error

	// CancelWithRestock atomically saves the cancelled order and returns
	// the line quantities to product stock.
	CancelWithRestock(ctx context.Context, o *Order) error

	// Delete deletes an order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByDeliveryStatus counts orders in a delivery state
	CountByDeliveryStatus(ctx context.Context, status DeliveryStatus) (int64, error)

	// GenerateOrderNumber generates a unique order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}
