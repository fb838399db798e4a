package order

import (
	"context"
	"testing"
	"time"

	"github.com/clothora/backend/internal/domain/order"
	"github.com/clothora/backend/internal/domain/payment"
	"github.com/clothora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedGateway returns pre-programmed responses and records calls
type scriptedGateway struct {
	createResp   *payment.CreateIntentResponse
	createErr    error
	queryResp    *payment.QueryPaymentResponse
	queryErr     error
	webhookEvent *payment.WebhookEvent
	webhookErr   error

	createCalls int
	queryCalls  int
}

var _ payment.PaymentGateway = (*scriptedGateway)(nil)

func (g *scriptedGateway) Name() string { return "scripted" }

func (g *scriptedGateway) CreateIntent(ctx context.Context, req *payment.CreateIntentRequest) (*payment.CreateIntentResponse, error) {
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.createResp, nil
}

func (g *scriptedGateway) QueryPayment(ctx context.Context, intentID string) (*payment.QueryPaymentResponse, error) {
	g.queryCalls++
	if g.queryErr != nil {
		return nil, g.queryErr
	}
	return g.queryResp, nil
}

func (g *scriptedGateway) VerifyCheckoutSignature(intentID, paymentID, signature string) error {
	return nil
}

func (g *scriptedGateway) VerifyWebhook(payload []byte, signature string) (*payment.WebhookEvent, error) {
	if g.webhookErr != nil {
		return nil, g.webhookErr
	}
	return g.webhookEvent, nil
}

func newTestPaymentService(orderRepo *fakeOrderRepository, gateway *scriptedGateway) *PaymentService {
	return NewPaymentService(orderRepo, gateway, zap.NewNop())
}

func onlineOrderWithIntent(t *testing.T, intentID string) *order.Order {
	t.Helper()
	o := placedTestOrder(t, uuid.New(), order.PaymentMethodOnline)
	if intentID != "" {
		require.NoError(t, o.AttachPaymentIntent(intentID))
	}
	o.ClearDomainEvents()
	return o
}

// ---------------------------------------------------------------------------
// CreateIntent
// ---------------------------------------------------------------------------

func TestPaymentService_CreateIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and attaches an intent", func(t *testing.T) {
		o := onlineOrderWithIntent(t, "")
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		gateway := &scriptedGateway{
			createResp: &payment.CreateIntentResponse{
				IntentID:       "order_new123",
				AmountSubunits: 99800,
				Currency:       "INR",
				KeyID:          "rzp_test_key",
			},
		}
		svc := newTestPaymentService(orderRepo, gateway)

		resp, err := svc.CreateIntent(ctx, o.UserID, o.ID)
		require.NoError(t, err)

		assert.Equal(t, "order_new123", resp.IntentID)
		assert.Equal(t, int64(99800), resp.AmountSubunits)
		assert.Equal(t, "rzp_test_key", resp.KeyID)
		assert.Equal(t, "order_new123", o.PaymentIntentID)
		require.Len(t, orderRepo.saved, 1)
	})

	t.Run("reuses an uncaptured existing intent", func(t *testing.T) {
		o := onlineOrderWithIntent(t, "order_existing")
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		gateway := &scriptedGateway{
			queryResp: &payment.QueryPaymentResponse{
				IntentID: "order_existing",
				Status:   payment.GatewayPaymentStatusCreated,
				Currency: "INR",
			},
		}
		svc := newTestPaymentService(orderRepo, gateway)

		resp, err := svc.CreateIntent(ctx, o.UserID, o.ID)
		require.NoError(t, err)

		assert.Equal(t, "order_existing", resp.IntentID)
		assert.Zero(t, gateway.createCalls)
	})

	t.Run("rejects foreign order", func(t *testing.T) {
		o := onlineOrderWithIntent(t, "")
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		svc := newTestPaymentService(orderRepo, &scriptedGateway{})

		_, err := svc.CreateIntent(ctx, uuid.New(), o.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("rejects cash on delivery order", func(t *testing.T) {
		o := placedTestOrder(t, uuid.New(), order.PaymentMethodCOD)
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		svc := newTestPaymentService(orderRepo, &scriptedGateway{})

		_, err := svc.CreateIntent(ctx, o.UserID, o.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PAYMENT_METHOD", domainErr.Code)
	})

	t.Run("rejects already paid order", func(t *testing.T) {
		o := onlineOrderWithIntent(t, "order_paid")
		require.NoError(t, o.MarkPaid("pay_done"))
		o.ClearDomainEvents()
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		svc := newTestPaymentService(orderRepo, &scriptedGateway{})

		_, err := svc.CreateIntent(ctx, o.UserID, o.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_PAID", domainErr.Code)
	})
}

// ---------------------------------------------------------------------------
// HandleWebhook
// ---------------------------------------------------------------------------

func TestPaymentService_HandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("capture marks the order paid", func(t *testing.T) {
		o := onlineOrderWithIntent(t, "order_hook1")
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		gateway := &scriptedGateway{
			webhookEvent: &payment.WebhookEvent{
				Event:     payment.WebhookEventPaymentCaptured,
				IntentID:  "order_hook1",
				PaymentID: "pay_hook1",
			},
		}
		svc := newTestPaymentService(orderRepo, gateway)

		err := svc.HandleWebhook(ctx, []byte(`{}`), "sig")
		require.NoError(t, err)

		assert.Equal(t, order.PaymentStatusPaid, o.PaymentStatus)
		assert.Equal(t, "pay_hook1", o.PaymentID)
		assert.NotNil(t, o.PaidAt)
	})

	t.Run("failure marks the payment failed", func(t *testing.T) {
		o := onlineOrderWithIntent(t, "order_hook2")
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		gateway := &scriptedGateway{
			webhookEvent: &payment.WebhookEvent{
				Event:    payment.WebhookEventPaymentFailed,
				IntentID: "order_hook2",
			},
		}
		svc := newTestPaymentService(orderRepo, gateway)

		err := svc.HandleWebhook(ctx, []byte(`{}`), "sig")
		require.NoError(t, err)
		assert.Equal(t, order.PaymentStatusFailed, o.PaymentStatus)
	})

	t.Run("unknown intent is acknowledged", func(t *testing.T) {
		gateway := &scriptedGateway{
			webhookEvent: &payment.WebhookEvent{
				Event:     payment.WebhookEventPaymentCaptured,
				IntentID:  "order_nobody",
				PaymentID: "pay_x",
			},
		}
		svc := newTestPaymentService(newFakeOrderRepository(), gateway)

		assert.NoError(t, svc.HandleWebhook(ctx, []byte(`{}`), "sig"))
	})

	t.Run("invalid signature is propagated", func(t *testing.T) {
		gateway := &scriptedGateway{webhookErr: payment.ErrGatewayInvalidWebhook}
		svc := newTestPaymentService(newFakeOrderRepository(), gateway)

		err := svc.HandleWebhook(ctx, []byte(`{}`), "bad")
		assert.ErrorIs(t, err, payment.ErrGatewayInvalidWebhook)
	})

	t.Run("capture on an already paid order is idempotent", func(t *testing.T) {
		o := onlineOrderWithIntent(t, "order_hook3")
		require.NoError(t, o.MarkPaid("pay_hook3"))
		o.ClearDomainEvents()
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		gateway := &scriptedGateway{
			webhookEvent: &payment.WebhookEvent{
				Event:     payment.WebhookEventPaymentCaptured,
				IntentID:  "order_hook3",
				PaymentID: "pay_hook3",
			},
		}
		svc := newTestPaymentService(orderRepo, gateway)

		assert.NoError(t, svc.HandleWebhook(ctx, []byte(`{}`), "sig"))
		assert.Equal(t, order.PaymentStatusPaid, o.PaymentStatus)
	})
}

// ---------------------------------------------------------------------------
// Reconcile
// ---------------------------------------------------------------------------

func TestPaymentService_Reconcile(t *testing.T) {
	ctx := context.Background()
	paidAt := time.Now()

	t.Run("confirmed capture forces paid and revives cancelled delivery", func(t *testing.T) {
		o := onlineOrderWithIntent(t, "order_rec1")
		require.NoError(t, o.Cancel("gateway hiccup"))
		o.ClearDomainEvents()
		require.Equal(t, order.PaymentStatusRefunded, o.PaymentStatus)

		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		gateway := &scriptedGateway{
			queryResp: &payment.QueryPaymentResponse{
				IntentID:  "order_rec1",
				PaymentID: "pay_rec1",
				Status:    payment.GatewayPaymentStatusPaid,
				Amount:    decimal.NewFromFloat(998.00),
				Currency:  "INR",
				PaidAt:    &paidAt,
			},
		}
		svc := newTestPaymentService(orderRepo, gateway)

		resp, err := svc.Reconcile(ctx, o.UserID, o.ID)
		require.NoError(t, err)

		assert.Equal(t, "PAID", resp.PaymentStatus)
		assert.Equal(t, "PROCESSING", resp.DeliveryStatus)
		assert.Nil(t, resp.CancelledAt)
		require.Len(t, orderRepo.saved, 1)
	})

	t.Run("failed payment is recorded", func(t *testing.T) {
		o := onlineOrderWithIntent(t, "order_rec2")
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		gateway := &scriptedGateway{
			queryResp: &payment.QueryPaymentResponse{
				IntentID: "order_rec2",
				Status:   payment.GatewayPaymentStatusFailed,
			},
		}
		svc := newTestPaymentService(orderRepo, gateway)

		resp, err := svc.Reconcile(ctx, o.UserID, o.ID)
		require.NoError(t, err)
		assert.Equal(t, "FAILED", resp.PaymentStatus)
	})

	t.Run("pending payment leaves the order untouched", func(t *testing.T) {
		o := onlineOrderWithIntent(t, "order_rec3")
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		gateway := &scriptedGateway{
			queryResp: &payment.QueryPaymentResponse{
				IntentID: "order_rec3",
				Status:   payment.GatewayPaymentStatusCreated,
			},
		}
		svc := newTestPaymentService(orderRepo, gateway)

		resp, err := svc.Reconcile(ctx, o.UserID, o.ID)
		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.PaymentStatus)
		assert.Empty(t, orderRepo.saved)
	})

	t.Run("rejects order without intent", func(t *testing.T) {
		o := onlineOrderWithIntent(t, "")
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		svc := newTestPaymentService(orderRepo, &scriptedGateway{})

		_, err := svc.Reconcile(ctx, o.UserID, o.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_INTENT", domainErr.Code)
	})

	t.Run("rejects foreign order", func(t *testing.T) {
		o := onlineOrderWithIntent(t, "order_rec4")
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		svc := newTestPaymentService(orderRepo, &scriptedGateway{})

		_, err := svc.Reconcile(ctx, uuid.New(), o.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}
