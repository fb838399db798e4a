package order

import (
	"context"

	"github.com/clothora/backend/internal/domain/order"
	"github.com/clothora/backend/internal/domain/payment"
	"github.com/clothora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService coordinates orders with the external payment gateway
type PaymentService struct {
	orderRepo      order.OrderRepository
	gateway        payment.PaymentGateway
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(orderRepo order.OrderRepository, gateway payment.PaymentGateway, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		orderRepo: orderRepo,
		gateway:   gateway,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateIntent creates a gateway payment intent for an online order.
// Idempotent: an existing intent is returned rather than recreated.
func (s *PaymentService) CreateIntent(ctx context.Context, userID, orderID uuid.UUID) (*CreateIntentResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.BelongsTo(userID) {
		return nil, shared.ErrForbidden
	}
	if o.PaymentMethod != order.PaymentMethodOnline {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Order is not payable online")
	}
	if o.IsPaid() {
		return nil, shared.NewDomainError("ALREADY_PAID", "Order is already paid")
	}
	if o.IsCancelled() {
		return nil, shared.NewDomainError("INVALID_STATE", "Order is cancelled")
	}

	if o.PaymentIntentID != "" {
		existing, err := s.gateway.QueryPayment(ctx, o.PaymentIntentID)
		if err == nil && !existing.Status.IsSuccess() {
			return &CreateIntentResponse{
				OrderID:        o.ID,
				IntentID:       existing.IntentID,
				AmountSubunits: o.GetTotalAmountMoney().Subunits(),
				Currency:       existing.Currency,
			}, nil
		}
	}

	created, err := s.gateway.CreateIntent(ctx, &payment.CreateIntentRequest{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Amount:      o.GetTotalAmountMoney(),
		Notes: map[string]string{
			"order_id": o.ID.String(),
			"user_id":  o.UserID.String(),
		},
	})
	if err != nil {
		return nil, err
	}

	if err := o.AttachPaymentIntent(created.IntentID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	return &CreateIntentResponse{
		OrderID:        o.ID,
		IntentID:       created.IntentID,
		AmountSubunits: created.AmountSubunits,
		Currency:       created.Currency,
		KeyID:          created.KeyID,
	}, nil
}

// HandleWebhook verifies and applies a gateway webhook notification.
// Unknown events and unknown intents are acknowledged without effect so
// the gateway does not retry indefinitely.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.VerifyWebhook(payload, signature)
	if err != nil {
		return err
	}

	switch event.Event {
	case payment.WebhookEventPaymentCaptured:
		return s.applyCapture(ctx, event.IntentID, event.PaymentID)
	case payment.WebhookEventPaymentFailed:
		return s.applyFailure(ctx, event.IntentID)
	default:
		s.logger.Debug("ignoring webhook event", zap.String("event", event.Event))
		return nil
	}
}

// Reconcile asks the gateway for the authoritative state of an order's
// payment and applies it. A confirmed capture makes the order PAID and
// forces its delivery state back to PROCESSING.
func (s *PaymentService) Reconcile(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.BelongsTo(userID) {
		return nil, shared.ErrForbidden
	}
	if o.PaymentIntentID == "" {
		return nil, shared.NewDomainError("NO_INTENT", "Order has no payment intent to reconcile")
	}

	status, err := s.gateway.QueryPayment(ctx, o.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	switch {
	case status.Status.IsSuccess():
		if err := o.ReconcilePaid(status.PaymentID); err != nil {
			return nil, err
		}
		if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, o)
	case status.Status == payment.GatewayPaymentStatusFailed:
		if err := o.MarkPaymentFailed(); err != nil {
			return nil, err
		}
		if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
			return nil, err
		}
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

func (s *PaymentService) applyCapture(ctx context.Context, intentID, paymentID string) error {
	o, err := s.orderRepo.FindByPaymentIntentID(ctx, intentID)
	if err != nil {
		s.logger.Warn("webhook capture for unknown intent", zap.String("intent_id", intentID))
		return nil
	}

	if err := o.MarkPaid(paymentID); err != nil {
		s.logger.Warn("webhook capture not applicable",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
		return nil
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return err
	}

	s.publishEvents(ctx, o)
	return nil
}

func (s *PaymentService) applyFailure(ctx context.Context, intentID string) error {
	o, err := s.orderRepo.FindByPaymentIntentID(ctx, intentID)
	if err != nil {
		return nil
	}

	if err := o.MarkPaymentFailed(); err != nil {
		return nil
	}

	return s.orderRepo.SaveWithLock(ctx, o)
}

func (s *PaymentService) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		o.ClearDomainEvents()
		return
	}
	for _, event := range o.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish order event",
				zap.String("event_type", event.EventType()),
				zap.String("order_id", o.ID.String()),
				zap.Error(err))
		}
	}
	o.ClearDomainEvents()
}
