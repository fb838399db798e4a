package order

import (
	"context"
	"fmt"

	"github.com/clothora/backend/internal/domain/identity"
	"github.com/clothora/backend/internal/domain/order"
	"github.com/clothora/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderShippedHandler emails the customer when their order ships.
// Other delivery transitions are ignored.
type OrderShippedHandler struct {
	userRepo identity.UserRepository
	mailer   Mailer
	logger   *zap.Logger
}

// NewOrderShippedHandler creates a new OrderShippedHandler
func NewOrderShippedHandler(userRepo identity.UserRepository, mailer Mailer, logger *zap.Logger) *OrderShippedHandler {
	return &OrderShippedHandler{
		userRepo: userRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

// EventType returns the handled event type
func (h *OrderShippedHandler) EventType() string {
	return order.EventTypeOrderDeliveryStatusChanged
}

// Handle sends the shipped notification email
func (h *OrderShippedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*order.OrderDeliveryStatusChangedEvent)
	if !ok || changed.NewStatus != order.DeliveryStatusShipped {
		return nil
	}

	user, err := h.userRepo.FindByID(ctx, changed.UserID)
	if err != nil {
		h.logger.Warn("shipped notification skipped, user not found",
			zap.String("order_id", changed.OrderID.String()),
			zap.Error(err))
		return nil
	}

	subject := fmt.Sprintf("Your order %s has shipped", changed.OrderNumber)
	plainText := fmt.Sprintf(
		"Hi %s,\n\nGood news: your order %s is on its way.",
		user.Name, changed.OrderNumber)
	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p><p>Good news: your order <strong>%s</strong> is on its way.</p>",
		user.Name, changed.OrderNumber)

	if err := h.mailer.Send(ctx, user.Name, user.Email, subject, plainText, htmlBody); err != nil {
		h.logger.Warn("failed to send shipped notification email",
			zap.String("order_id", changed.OrderID.String()),
			zap.String("email", user.Email),
			zap.Error(err))
	}

	return nil
}
