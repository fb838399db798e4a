package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "github.com/clothora/backend/internal/domain/payment"
	"github.com/clothora/backend/internal/domain/shared/valueobject"
	"github.com/clothora/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGateway(baseURL string) *RazorpayGateway {
	return NewRazorpayGateway(config.PaymentConfig{
		KeyID:         "rzp_test_key",
		KeySecret:     "test_secret",
		WebhookSecret: "webhook_secret",
		BaseURL:       baseURL,
		Timeout:       5 * time.Second,
	}, zap.NewNop())
}

func signHex(message, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRazorpayGateway_CreateIntent(t *testing.T) {
	t.Run("creates an intent with amount in subunits", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "rzp_test_key", user)
			assert.Equal(t, "test_secret", pass)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"order_abc123","amount":99900,"currency":"INR","receipt":"ORD-20260831-0001","status":"created","created_at":1756600000}`))
		}))
		defer server.Close()

		gateway := newTestGateway(server.URL)

		amount := valueobject.NewMoneyINR(decimal.NewFromInt(999))

		resp, err := gateway.CreateIntent(context.Background(), &domain.CreateIntentRequest{
			OrderID:     uuid.New(),
			OrderNumber: "ORD-20260831-0001",
			Amount:      amount,
		})

		require.NoError(t, err)
		assert.Equal(t, "order_abc123", resp.IntentID)
		assert.Equal(t, int64(99900), resp.AmountSubunits)
		assert.Equal(t, "INR", resp.Currency)
		assert.Equal(t, domain.GatewayPaymentStatusCreated, resp.Status)
		assert.Equal(t, "rzp_test_key", resp.KeyID)
	})

	t.Run("rejects amounts below the gateway minimum", func(t *testing.T) {
		gateway := newTestGateway("http://unused")

		amount := valueobject.NewMoneyINR(decimal.NewFromFloat(0.50))

		_, err := gateway.CreateIntent(context.Background(), &domain.CreateIntentRequest{
			OrderID:     uuid.New(),
			OrderNumber: "ORD-20260831-0002",
			Amount:      amount,
		})

		assert.ErrorIs(t, err, domain.ErrPaymentAmountTooSmall)
	})

	t.Run("returns gateway error on non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		gateway := newTestGateway(server.URL)

		amount := valueobject.NewMoneyINR(decimal.NewFromInt(100))

		_, err := gateway.CreateIntent(context.Background(), &domain.CreateIntentRequest{
			OrderID:     uuid.New(),
			OrderNumber: "ORD-20260831-0003",
			Amount:      amount,
		})

		assert.ErrorIs(t, err, domain.ErrGatewayRequestFailed)
	})
}

func TestRazorpayGateway_QueryPayment(t *testing.T) {
	t.Run("reports the captured payment", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orders/order_abc123/payments", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"count":2,"items":[
				{"id":"pay_failed1","order_id":"order_abc123","amount":99900,"currency":"INR","status":"failed","created_at":1756600100},
				{"id":"pay_ok2","order_id":"order_abc123","amount":99900,"currency":"INR","status":"captured","created_at":1756600200}
			]}`))
		}))
		defer server.Close()

		gateway := newTestGateway(server.URL)

		resp, err := gateway.QueryPayment(context.Background(), "order_abc123")

		require.NoError(t, err)
		assert.Equal(t, "pay_ok2", resp.PaymentID)
		assert.Equal(t, domain.GatewayPaymentStatusPaid, resp.Status)
		assert.True(t, resp.Amount.Equal(decimal.NewFromInt(999)))
		require.NotNil(t, resp.PaidAt)
	})

	t.Run("reports created when no payments exist", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"count":0,"items":[]}`))
		}))
		defer server.Close()

		gateway := newTestGateway(server.URL)

		resp, err := gateway.QueryPayment(context.Background(), "order_empty")

		require.NoError(t, err)
		assert.Equal(t, domain.GatewayPaymentStatusCreated, resp.Status)
		assert.Empty(t, resp.PaymentID)
	})

	t.Run("requires an intent id", func(t *testing.T) {
		gateway := newTestGateway("http://unused")

		_, err := gateway.QueryPayment(context.Background(), "")

		assert.ErrorIs(t, err, domain.ErrPaymentInvalidQueryParams)
	})
}

func TestRazorpayGateway_VerifyCheckoutSignature(t *testing.T) {
	gateway := newTestGateway("http://unused")

	t.Run("accepts a valid signature", func(t *testing.T) {
		signature := signHex("order_abc123|pay_xyz789", "test_secret")

		err := gateway.VerifyCheckoutSignature("order_abc123", "pay_xyz789", signature)

		assert.NoError(t, err)
	})

	t.Run("rejects a tampered signature", func(t *testing.T) {
		signature := signHex("order_abc123|pay_other", "test_secret")

		err := gateway.VerifyCheckoutSignature("order_abc123", "pay_xyz789", signature)

		assert.ErrorIs(t, err, domain.ErrGatewayInvalidWebhook)
	})
}

func TestRazorpayGateway_VerifyWebhook(t *testing.T) {
	gateway := newTestGateway("http://unused")

	payload := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_xyz789","order_id":"order_abc123","amount":99900,"currency":"INR","status":"captured"}}}}`)

	t.Run("verifies and parses a captured event", func(t *testing.T) {
		signature := signHex(string(payload), "webhook_secret")

		event, err := gateway.VerifyWebhook(payload, signature)

		require.NoError(t, err)
		assert.Equal(t, domain.WebhookEventPaymentCaptured, event.Event)
		assert.Equal(t, "order_abc123", event.IntentID)
		assert.Equal(t, "pay_xyz789", event.PaymentID)
		assert.Equal(t, int64(99900), event.AmountSubunits)
	})

	t.Run("rejects a bad signature", func(t *testing.T) {
		event, err := gateway.VerifyWebhook(payload, "deadbeef")

		assert.Nil(t, event)
		assert.ErrorIs(t, err, domain.ErrGatewayInvalidWebhook)
	})
}
