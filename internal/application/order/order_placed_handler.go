package order

import (
	"context"
	"fmt"

	"github.com/clothora/backend/internal/domain/identity"
	"github.com/clothora/backend/internal/domain/order"
	"github.com/clothora/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderPlacedHandler sends a confirmation email when an order is placed.
// Email failures are logged and never fail the placement.
type OrderPlacedHandler struct {
	userRepo identity.UserRepository
	mailer   Mailer
	logger   *zap.Logger
}

// NewOrderPlacedHandler creates a new OrderPlacedHandler
func NewOrderPlacedHandler(userRepo identity.UserRepository, mailer Mailer, logger *zap.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{
		userRepo: userRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

// EventType returns the handled event type
func (h *OrderPlacedHandler) EventType() string {
	return order.EventTypeOrderPlaced
}

// Handle sends the order confirmation email
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*order.OrderPlacedEvent)
	if !ok {
		return nil
	}

	user, err := h.userRepo.FindByID(ctx, placed.UserID)
	if err != nil {
		h.logger.Warn("order confirmation skipped, user not found",
			zap.String("order_id", placed.OrderID.String()),
			zap.Error(err))
		return nil
	}

	subject := fmt.Sprintf("Order confirmed: %s", placed.OrderNumber)
	plainText := fmt.Sprintf(
		"Hi %s,\n\nThanks for your order %s. We received %d item(s) totalling %s INR.\n\nWe'll email you again when it ships.",
		user.Name, placed.OrderNumber, placed.ItemCount, placed.TotalAmount.StringFixed(2))
	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for your order <strong>%s</strong>. We received %d item(s) totalling <strong>%s INR</strong>.</p><p>We'll email you again when it ships.</p>",
		user.Name, placed.OrderNumber, placed.ItemCount, placed.TotalAmount.StringFixed(2))

	if err := h.mailer.Send(ctx, user.Name, user.Email, subject, plainText, htmlBody); err != nil {
		h.logger.Warn("failed to send order confirmation email",
			zap.String("order_id", placed.OrderID.String()),
			zap.String("email", user.Email),
			zap.Error(err))
	}

	return nil
}
