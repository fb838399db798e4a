package handler

import (
	"errors"
	"io"
	"net/http"

	orderapp "github.com/clothora/backend/internal/application/order"
	"github.com/clothora/backend/internal/domain/payment"
	"github.com/clothora/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RazorpaySignatureHeader carries the gateway's HMAC over the raw body
const RazorpaySignatureHeader = "X-Razorpay-Signature"

// maxWebhookBodyBytes caps the raw webhook payload
const maxWebhookBodyBytes = 64 << 10

// PaymentWebhookHandler handles asynchronous gateway notifications.
// The signature is verified against the raw request body, so the body
// must be read before any JSON binding.
type PaymentWebhookHandler struct {
	BaseHandler
	paymentService *orderapp.PaymentService
	logger         *zap.Logger
}

// NewPaymentWebhookHandler creates a new PaymentWebhookHandler
func NewPaymentWebhookHandler(paymentService *orderapp.PaymentService, logger *zap.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// Handle verifies and applies a gateway webhook. Business no-ops are
// acknowledged with 200 so the gateway stops retrying; only transport
// and signature problems are reported as errors.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	signature := c.GetHeader(RazorpaySignatureHeader)
	if signature == "" {
		h.BadRequest(c, "Missing webhook signature")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		h.BadRequest(c, "Failed to read webhook body")
		return
	}

	if err := h.paymentService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		if errors.Is(err, payment.ErrGatewayInvalidWebhook) {
			h.logger.Warn("webhook signature verification failed")
			h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Invalid webhook signature")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"received": true})
}
