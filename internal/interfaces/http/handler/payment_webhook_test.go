package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	orderapp "github.com/clothora/backend/internal/application/order"
	"github.com/clothora/backend/internal/domain/order"
	"github.com/clothora/backend/internal/domain/payment"
	"github.com/clothora/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubGateway verifies webhooks against a fixed signature
type stubGateway struct {
	event *payment.WebhookEvent
}

func (g *stubGateway) Name() string { return "stub" }

func (g *stubGateway) CreateIntent(ctx context.Context, req *payment.CreateIntentRequest) (*payment.CreateIntentResponse, error) {
	return nil, payment.ErrGatewayNotConfigured
}

func (g *stubGateway) QueryPayment(ctx context.Context, intentID string) (*payment.QueryPaymentResponse, error) {
	return nil, payment.ErrPaymentNotFound
}

func (g *stubGateway) VerifyCheckoutSignature(intentID, paymentID, signature string) error {
	return payment.ErrGatewayInvalidWebhook
}

func (g *stubGateway) VerifyWebhook(payload []byte, signature string) (*payment.WebhookEvent, error) {
	if signature != "good-signature" {
		return nil, payment.ErrGatewayInvalidWebhook
	}
	return g.event, nil
}

// emptyOrderRepository knows no orders
type emptyOrderRepository struct{}

func (r *emptyOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return nil, shared.ErrNotFound
}

func (r *emptyOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	return nil, shared.ErrNotFound
}

func (r *emptyOrderRepository) FindByPaymentIntentID(ctx context.Context, intentID string) (*order.Order, error) {
	return nil, shared.ErrNotFound
}

func (r *emptyOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	return nil, nil
}

func (r *emptyOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	return nil, nil
}

func (r *emptyOrderRepository) Place(ctx context.Context, o *order.Order) error        { return nil }
func (r *emptyOrderRepository) Save(ctx context.Context, o *order.Order) error         { return nil }
func (r *emptyOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error { return nil }
func (r *emptyOrderRepository) CancelWithRestock(ctx context.Context, o *order.Order) error {
	return nil
}
func (r *emptyOrderRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (r *emptyOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}
func (r *emptyOrderRepository) CountByDeliveryStatus(ctx context.Context, status order.DeliveryStatus) (int64, error) {
	return 0, nil
}
func (r *emptyOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	return "ORD-20260831-0001", nil
}

func newWebhookTestRouter(event *payment.WebhookEvent) *gin.Engine {
	svc := orderapp.NewPaymentService(&emptyOrderRepository{}, &stubGateway{event: event}, zap.NewNop())
	h := NewPaymentWebhookHandler(svc, zap.NewNop())

	router := gin.New()
	router.POST("/payments/webhook", h.Handle)
	return router
}

func TestPaymentWebhookHandler_Handle(t *testing.T) {
	captured := &payment.WebhookEvent{
		Event:     "payment.captured",
		IntentID:  "order_unknown",
		PaymentID: "pay_123",
	}

	t.Run("acknowledges capture for unknown intent", func(t *testing.T) {
		router := newWebhookTestRouter(captured)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/payments/webhook", bytes.NewBufferString(`{"event":"payment.captured"}`))
		req.Header.Set(RazorpaySignatureHeader, "good-signature")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"received":true`)
	})

	t.Run("rejects invalid signature", func(t *testing.T) {
		router := newWebhookTestRouter(captured)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/payments/webhook", bytes.NewBufferString(`{}`))
		req.Header.Set(RazorpaySignatureHeader, "tampered")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects missing signature", func(t *testing.T) {
		router := newWebhookTestRouter(captured)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/payments/webhook", bytes.NewBufferString(`{}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("acknowledges unrecognized events", func(t *testing.T) {
		router := newWebhookTestRouter(&payment.WebhookEvent{Event: "refund.created"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/payments/webhook", bytes.NewBufferString(`{"event":"refund.created"}`))
		req.Header.Set(RazorpaySignatureHeader, "good-signature")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
