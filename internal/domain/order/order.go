package order

import (
	"fmt"
	"time"

	"github.com/clothora/backend/internal/domain/shared"
	"github.com/clothora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how an order is paid
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodOnline:
		return true
	}
	return false
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// DeliveryStatus represents the fulfilment state of an order
type DeliveryStatus string

const (
	DeliveryStatusProcessing DeliveryStatus = "PROCESSING"
	DeliveryStatusShipped    DeliveryStatus = "SHIPPED"
	DeliveryStatusDelivered  DeliveryStatus = "DELIVERED"
	DeliveryStatusCancelled  DeliveryStatus = "CANCELLED"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusProcessing, DeliveryStatusShipped, DeliveryStatusDelivered, DeliveryStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of DeliveryStatus
func (s DeliveryStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	switch s {
	case DeliveryStatusProcessing:
		return target == DeliveryStatusShipped || target == DeliveryStatusCancelled
	case DeliveryStatusShipped:
		return target == DeliveryStatusDelivered || target == DeliveryStatusCancelled
	case DeliveryStatusDelivered, DeliveryStatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for terminal delivery states
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusCancelled
}

// OrderItem is an immutable snapshot of a purchased product variant.
// Name, price, and image are copied at placement time so later catalog
// edits do not change past orders.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Size        string          `gorm:"type:varchar(20);not null;default:''"`
	Color       string          `gorm:"type:varchar(50);not null;default:''"`
	ImageURL    string          `gorm:"type:text"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity    int64           `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order line snapshot
func NewOrderItem(orderID, productID uuid.UUID, productName, size, color, imageURL string, unitPrice valueobject.Money, quantity int64) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Size:        size,
		Color:       color,
		ImageURL:    imageURL,
		UnitPrice:   unitPrice.Amount(),
		Quantity:    quantity,
		Amount:      unitPrice.Amount().Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   time.Now(),
	}, nil
}

// GetUnitPriceMoney returns the unit price as Money value object
func (i *OrderItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(i.UnitPrice)
}

// GetAmountMoney returns the line amount as Money value object
func (i *OrderItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(i.Amount)
}

// Order represents a placed customer order
// It is the aggregate root for order lifecycle operations
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress valueobject.Address `gorm:"type:jsonb"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaymentMethod   PaymentMethod       `gorm:"type:varchar(20);not null"`
	PaymentStatus   PaymentStatus       `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DeliveryStatus  DeliveryStatus      `gorm:"type:varchar(20);not null;default:'PROCESSING';index"`
	PaymentIntentID string              `gorm:"type:varchar(100);index"`
	PaymentID       string              `gorm:"type:varchar(100)"`
	PaidAt          *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in PROCESSING/PENDING state.
// Items must be non-empty and the total is computed from the line amounts.
func NewOrder(orderNumber string, userID uuid.UUID, shippingAddress valueobject.Address, paymentMethod PaymentMethod) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if shippingAddress.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address is required")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be COD or ONLINE")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            userID,
		Items:             make([]OrderItem, 0),
		ShippingAddress:   shippingAddress,
		TotalAmount:       decimal.Zero,
		PaymentMethod:     paymentMethod,
		PaymentStatus:     PaymentStatusPending,
		DeliveryStatus:    DeliveryStatusProcessing,
	}, nil
}

// AddItem appends a line snapshot and recalculates the total.
// Only allowed before the order is placed.
func (o *Order) AddItem(productID uuid.UUID, productName, size, color, imageURL string, unitPrice valueobject.Money, quantity int64) error {
	item, err := NewOrderItem(o.ID, productID, productName, size, color, imageURL, unitPrice, quantity)
	if err != nil {
		return err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return nil
}

// Place finalizes the order after all items are added.
// Publishes the OrderPlaced event.
func (o *Order) Place() error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot place an order without items")
	}
	if !o.TotalAmount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Order total must be positive")
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return nil
}

// VerifyDeclaredTotal checks a client-declared total against the computed
// total within the configured tolerance.
func (o *Order) VerifyDeclaredTotal(declared valueobject.Money) error {
	computed := valueobject.NewMoneyINR(o.TotalAmount)
	ok, err := computed.WithinToleranceOf(declared)
	if err != nil {
		return shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}
	if !ok {
		return shared.ErrTotalMismatch
	}
	return nil
}

// AttachPaymentIntent records the gateway order created for this order
func (o *Order) AttachPaymentIntent(intentID string) error {
	if intentID == "" {
		return shared.NewDomainError("INVALID_INTENT", "Payment intent ID cannot be empty")
	}

	o.PaymentIntentID = intentID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// MarkPaid records a captured payment.
// Idempotent when the same payment is reported twice.
func (o *Order) MarkPaid(paymentID string) error {
	if o.PaymentStatus == PaymentStatusPaid {
		if o.PaymentID == paymentID {
			return nil
		}
		return shared.NewDomainError("ALREADY_PAID", "Order is already paid")
	}
	if o.PaymentStatus == PaymentStatusRefunded {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a refunded order")
	}

	now := time.Now()
	o.PaymentStatus = PaymentStatusPaid
	o.PaymentID = paymentID
	o.PaidAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// MarkPaymentFailed records a failed payment attempt
func (o *Order) MarkPaymentFailed() error {
	if o.PaymentStatus == PaymentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot fail a paid order")
	}

	o.PaymentStatus = PaymentStatusFailed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// ReconcilePaid applies a confirmed gateway capture to the order.
// Unlike MarkPaid this overrides FAILED and REFUNDED states, since the
// gateway's word on a capture is authoritative. A paid order is always
// deliverable, so a cancelled delivery state is forced back to PROCESSING.
func (o *Order) ReconcilePaid(paymentID string) error {
	if o.PaymentStatus == PaymentStatusPaid {
		if o.PaymentID == paymentID {
			return nil
		}
		return shared.NewDomainError("ALREADY_PAID", "Order is already paid")
	}

	now := time.Now()
	o.PaymentStatus = PaymentStatusPaid
	o.PaymentID = paymentID
	o.PaidAt = &now

	if o.DeliveryStatus == DeliveryStatusCancelled {
		o.DeliveryStatus = DeliveryStatusProcessing
		o.CancelledAt = nil
		o.CancelReason = ""
		o.DeliveredAt = nil
	}

	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// SetDeliveryStatus transitions the delivery state.
// DELIVERED stamps DeliveredAt; every other target clears it.
func (o *Order) SetDeliveryStatus(target DeliveryStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown delivery status")
	}
	if o.DeliveryStatus == target {
		return nil
	}
	if !o.DeliveryStatus.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition delivery status from %s to %s", o.DeliveryStatus, target))
	}

	now := time.Now()
	from := o.DeliveryStatus
	o.DeliveryStatus = target

	if target == DeliveryStatusDelivered {
		o.DeliveredAt = &now
	} else {
		o.DeliveredAt = nil
	}
	if target == DeliveryStatusCancelled {
		o.CancelledAt = &now
	}

	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderDeliveryStatusChangedEvent(o, from))

	return nil
}

// Cancel cancels the order on behalf of its owner.
// Only allowed while the order is still PROCESSING. Payment status moves
// to REFUNDED so a captured amount is returned to the customer.
func (o *Order) Cancel(reason string) error {
	if o.DeliveryStatus != DeliveryStatusProcessing {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel order in %s status", o.DeliveryStatus))
	}

	now := time.Now()
	o.DeliveryStatus = DeliveryStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.PaymentStatus = PaymentStatusRefunded
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}

// recalculateTotal recalculates the order total from line amounts
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}

// GetTotalAmountMoney returns the total as Money value object
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(o.TotalAmount)
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// BelongsTo returns true if the order is owned by the user
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID == userID
}

// IsPaid returns true if the payment was captured
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// IsCancelled returns true if delivery was cancelled
func (o *Order) IsCancelled() bool {
	return o.DeliveryStatus == DeliveryStatusCancelled
}

// IsDelivered returns true if the order was delivered
func (o *Order) IsDelivered() bool {
	return o.DeliveryStatus == DeliveryStatusDelivered
}
