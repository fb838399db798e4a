package payment

import (
	"context"
	"errors"
	"time"

	"github.com/clothora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Payment Gateway Errors
// ---------------------------------------------------------------------------

var (
	// Intent creation errors
	ErrPaymentInvalidOrderID  = errors.New("payment: invalid order ID")
	ErrPaymentInvalidReceipt  = errors.New("payment: invalid receipt")
	ErrPaymentInvalidAmount   = errors.New("payment: invalid payment amount")
	ErrPaymentAmountTooSmall  = errors.New("payment: amount below gateway minimum")
	ErrPaymentInvalidCurrency = errors.New("payment: invalid currency")

	// Query errors
	ErrPaymentInvalidQueryParams = errors.New("payment: gateway intent ID is required")
	ErrPaymentNotFound           = errors.New("payment: payment not found")

	// Gateway errors
	ErrGatewayNotConfigured   = errors.New("payment: gateway not configured")
	ErrGatewayRequestFailed   = errors.New("payment: gateway request failed")
	ErrGatewayInvalidResponse = errors.New("payment: invalid gateway response")
	ErrGatewayInvalidWebhook  = errors.New("payment: invalid webhook signature")
)

// MinIntentSubunits is the smallest amount the gateway accepts, expressed
// in the currency's minor unit (100 paise = 1 INR).
const MinIntentSubunits int64 = 100

// GatewayPaymentStatus represents the status of a payment in the gateway
type GatewayPaymentStatus string

const (
	GatewayPaymentStatusCreated  GatewayPaymentStatus = "CREATED"
	GatewayPaymentStatusPending  GatewayPaymentStatus = "PENDING"
	GatewayPaymentStatusPaid     GatewayPaymentStatus = "PAID"
	GatewayPaymentStatusFailed   GatewayPaymentStatus = "FAILED"
	GatewayPaymentStatusRefunded GatewayPaymentStatus = "REFUNDED"
)

// IsValid returns true if the status is valid
func (s GatewayPaymentStatus) IsValid() bool {
	switch s {
	case GatewayPaymentStatusCreated, GatewayPaymentStatusPending, GatewayPaymentStatusPaid,
		GatewayPaymentStatusFailed, GatewayPaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// String returns the string representation of GatewayPaymentStatus
func (s GatewayPaymentStatus) String() string {
	return string(s)
}

// IsSuccess returns true if the payment was captured
func (s GatewayPaymentStatus) IsSuccess() bool {
	return s == GatewayPaymentStatusPaid
}

// ---------------------------------------------------------------------------
// Request/Response DTOs
// ---------------------------------------------------------------------------

// CreateIntentRequest represents a request to create a payment intent
type CreateIntentRequest struct {
	// OrderID is our internal order ID
	OrderID uuid.UUID
	// OrderNumber is our internal order number (used as the gateway receipt)
	OrderNumber string
	// Amount is the payment amount in major units
	Amount valueobject.Money
	// Notes is additional key-value data to associate with the intent
	Notes map[string]string
}

// Validate validates the create intent request.
// The gateway bills in minor units, so the amount is converted to
// subunits and checked against the gateway minimum.
func (r *CreateIntentRequest) Validate() error {
	if r.OrderID == uuid.Nil {
		return ErrPaymentInvalidOrderID
	}
	if r.OrderNumber == "" {
		return ErrPaymentInvalidReceipt
	}
	if !r.Amount.IsPositive() {
		return ErrPaymentInvalidAmount
	}
	if r.Amount.Currency() == "" {
		return ErrPaymentInvalidCurrency
	}
	if r.Amount.Subunits() < MinIntentSubunits {
		return ErrPaymentAmountTooSmall
	}
	return nil
}

// CreateIntentResponse represents the gateway's created payment intent
type CreateIntentResponse struct {
	// IntentID is the payment order ID in the gateway
	IntentID string
	// AmountSubunits is the billed amount in minor units
	AmountSubunits int64
	// Currency is the payment currency
	Currency string
	// Receipt echoes the receipt supplied on creation
	Receipt string
	// Status is the initial gateway status
	Status GatewayPaymentStatus
	// KeyID is the public key the frontend uses for checkout
	KeyID string
	// CreatedAt is when the intent was created at the gateway
	CreatedAt time.Time
}

// QueryPaymentResponse represents the gateway's view of a payment
type QueryPaymentResponse struct {
	// IntentID is the payment order ID in the gateway
	IntentID string
	// PaymentID is the capture transaction ID, when captured
	PaymentID string
	// Status is the current gateway status
	Status GatewayPaymentStatus
	// Amount is the payment amount in major units
	Amount decimal.Decimal
	// Currency is the payment currency
	Currency string
	// PaidAt is when the payment was captured
	PaidAt *time.Time
}

// WebhookEvent is a verified payment notification from the gateway
type WebhookEvent struct {
	// Event is the gateway event name, e.g. "payment.captured"
	Event string
	// IntentID is the gateway payment order the event refers to
	IntentID string
	// PaymentID is the capture transaction ID
	PaymentID string
	// AmountSubunits is the captured amount in minor units
	AmountSubunits int64
	// Currency is the payment currency
	Currency string
	// RawPayload is the original webhook body
	RawPayload []byte
}

// Webhook event names
const (
	WebhookEventPaymentCaptured = "payment.captured"
	WebhookEventPaymentFailed   = "payment.failed"
)

// ---------------------------------------------------------------------------
// PaymentGateway Port Interface
// ---------------------------------------------------------------------------

// PaymentGateway defines the port interface for the external payment
// gateway. It is defined in the domain layer; the concrete adapter lives
// in the infrastructure layer.
type PaymentGateway interface {
	// Name returns the gateway identifier
	Name() string

	// CreateIntent creates a payment intent at the gateway.
	// The caller completes checkout on the client using the returned
	// intent ID and key.
	CreateIntent(ctx context.Context, req *CreateIntentRequest) (*CreateIntentResponse, error)

	// QueryPayment queries the current status of a gateway intent
	QueryPayment(ctx context.Context, intentID string) (*QueryPaymentResponse, error)

	// VerifyCheckoutSignature verifies the signature the gateway hands to
	// the client after checkout, binding intentID and paymentID.
	VerifyCheckoutSignature(intentID, paymentID, signature string) error

	// VerifyWebhook verifies and parses a webhook notification.
	// Returns ErrGatewayInvalidWebhook if the signature does not match.
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
