package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domain "github.com/clothora/backend/internal/domain/payment"
	"github.com/clothora/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RazorpayGateway implements the PaymentGateway port against the Razorpay
// Orders and Payments APIs.
type RazorpayGateway struct {
	keyID         string
	keySecret     string
	webhookSecret string
	baseURL       string
	client        *http.Client
	logger        *zap.Logger
}

// NewRazorpayGateway creates a new Razorpay gateway adapter
func NewRazorpayGateway(cfg config.PaymentConfig, logger *zap.Logger) *RazorpayGateway {
	return &RazorpayGateway{
		keyID:         cfg.KeyID,
		keySecret:     cfg.KeySecret,
		webhookSecret: cfg.WebhookSecret,
		baseURL:       cfg.BaseURL,
		client:        &http.Client{Timeout: cfg.Timeout},
		logger:        logger,
	}
}

// Name returns the gateway identifier
func (g *RazorpayGateway) Name() string {
	return "razorpay"
}

// razorpayOrder is the gateway's order entity
type razorpayOrder struct {
	ID        string            `json:"id"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Receipt   string            `json:"receipt"`
	Status    string            `json:"status"`
	Notes     map[string]string `json:"notes"`
	CreatedAt int64             `json:"created_at"`
}

// razorpayPayment is the gateway's payment entity
type razorpayPayment struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type razorpayPaymentList struct {
	Count int               `json:"count"`
	Items []razorpayPayment `json:"items"`
}

// CreateIntent creates a payment order at the gateway
func (g *RazorpayGateway) CreateIntent(ctx context.Context, req *domain.CreateIntentRequest) (*domain.CreateIntentResponse, error) {
	if g.keyID == "" || g.keySecret == "" {
		return nil, domain.ErrGatewayNotConfigured
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"amount":   req.Amount.Subunits(),
		"currency": string(req.Amount.Currency()),
		"receipt":  req.OrderNumber,
	}
	if len(req.Notes) > 0 {
		body["notes"] = req.Notes
	}

	var created razorpayOrder
	if err := g.do(ctx, http.MethodPost, "/orders", body, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, domain.ErrGatewayInvalidResponse
	}

	return &domain.CreateIntentResponse{
		IntentID:       created.ID,
		AmountSubunits: created.Amount,
		Currency:       created.Currency,
		Receipt:        created.Receipt,
		Status:         mapGatewayStatus(created.Status),
		KeyID:          g.keyID,
		CreatedAt:      time.Unix(created.CreatedAt, 0),
	}, nil
}

// QueryPayment queries the payments captured against a gateway order.
// The newest successful payment wins; with none, the newest attempt is
// reported.
func (g *RazorpayGateway) QueryPayment(ctx context.Context, intentID string) (*domain.QueryPaymentResponse, error) {
	if g.keyID == "" || g.keySecret == "" {
		return nil, domain.ErrGatewayNotConfigured
	}
	if intentID == "" {
		return nil, domain.ErrPaymentInvalidQueryParams
	}

	var list razorpayPaymentList
	if err := g.do(ctx, http.MethodGet, "/orders/"+intentID+"/payments", nil, &list); err != nil {
		return nil, err
	}

	resp := &domain.QueryPaymentResponse{
		IntentID: intentID,
		Status:   domain.GatewayPaymentStatusCreated,
	}

	for _, p := range list.Items {
		status := mapGatewayStatus(p.Status)
		if status.IsSuccess() || resp.PaymentID == "" {
			resp.PaymentID = p.ID
			resp.Status = status
			resp.Amount = decimal.NewFromInt(p.Amount).Div(decimal.NewFromInt(100))
			resp.Currency = p.Currency
			if status.IsSuccess() {
				paidAt := time.Unix(p.CreatedAt, 0)
				resp.PaidAt = &paidAt
				break
			}
		}
	}

	return resp, nil
}

// VerifyCheckoutSignature verifies the checkout callback signature, an
// HMAC-SHA256 of "<intentID>|<paymentID>" keyed with the API secret.
func (g *RazorpayGateway) VerifyCheckoutSignature(intentID, paymentID, signature string) error {
	if g.keySecret == "" {
		return domain.ErrGatewayNotConfigured
	}

	expected := hmacHex([]byte(intentID+"|"+paymentID), []byte(g.keySecret))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.ErrGatewayInvalidWebhook
	}
	return nil
}

// razorpayWebhookBody is the webhook envelope
type razorpayWebhookBody struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity razorpayPayment `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// VerifyWebhook verifies the webhook signature, an HMAC-SHA256 of the raw
// body keyed with the webhook secret, and parses the notification.
func (g *RazorpayGateway) VerifyWebhook(payload []byte, signature string) (*domain.WebhookEvent, error) {
	if g.webhookSecret == "" {
		return nil, domain.ErrGatewayNotConfigured
	}

	expected := hmacHex(payload, []byte(g.webhookSecret))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, domain.ErrGatewayInvalidWebhook
	}

	var body razorpayWebhookBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, domain.ErrGatewayInvalidResponse
	}

	entity := body.Payload.Payment.Entity
	return &domain.WebhookEvent{
		Event:          body.Event,
		IntentID:       entity.OrderID,
		PaymentID:      entity.ID,
		AmountSubunits: entity.Amount,
		Currency:       entity.Currency,
		RawPayload:     payload,
	}, nil
}

// do executes an authenticated request against the gateway API
func (g *RazorpayGateway) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("gateway request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return domain.ErrGatewayRequestFailed
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.ErrGatewayInvalidResponse
	}

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrPaymentNotFound
	}
	if resp.StatusCode >= 400 {
		g.logger.Warn("gateway returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d", domain.ErrGatewayRequestFailed, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return domain.ErrGatewayInvalidResponse
		}
	}
	return nil
}

// mapGatewayStatus converts Razorpay entity statuses to the domain status
func mapGatewayStatus(status string) domain.GatewayPaymentStatus {
	switch status {
	case "created":
		return domain.GatewayPaymentStatusCreated
	case "attempted", "authorized":
		return domain.GatewayPaymentStatusPending
	case "paid", "captured":
		return domain.GatewayPaymentStatusPaid
	case "failed":
		return domain.GatewayPaymentStatusFailed
	case "refunded":
		return domain.GatewayPaymentStatusRefunded
	default:
		return domain.GatewayPaymentStatusPending
	}
}

func hmacHex(message, key []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

// Ensure RazorpayGateway implements PaymentGateway
var _ domain.PaymentGateway = (*RazorpayGateway)(nil)
