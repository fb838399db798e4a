package cart

import (
	"time"

	"github.com/clothora/backend/internal/domain/shared"
	"github.com/clothora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem represents a single product variant selection in a cart.
// Two entries with the same product, size, and color are merged.
type CartItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Size      string          `gorm:"type:varchar(20);not null;default:''"`
	Color     string          `gorm:"type:varchar(50);not null;default:''"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Quantity  int64           `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Amount returns the line total for the entry
func (i *CartItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// matches reports whether the item refers to the same variant selection
func (i *CartItem) matches(productID uuid.UUID, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}

// Cart represents a user's shopping cart
// It is the aggregate root; each user has exactly one cart
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates a new cart for a user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
	}, nil
}

// AddItem adds a variant selection to the cart. The unit price is
// snapshotted on the entry so later catalog price changes do not move
// the cart total. If the same product, size, and color is already
// present the quantities are merged and the snapshot is refreshed.
func (c *Cart) AddItem(productID uuid.UUID, size, color string, unitPrice decimal.Decimal, quantity int64) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	for idx := range c.Items {
		if c.Items[idx].matches(productID, size, color) {
			c.Items[idx].Quantity += quantity
			c.Items[idx].UnitPrice = unitPrice
			c.Items[idx].UpdatedAt = time.Now()
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}

	now := time.Now()
	c.Items = append(c.Items, CartItem{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: productID,
		Size:      size,
		Color:     color,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
	c.UpdatedAt = now
	c.IncrementVersion()

	return nil
}

// UpdateItemQuantity replaces the quantity of an existing entry.
// A quantity of zero removes the entry.
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, size, color string, quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	for idx := range c.Items {
		if c.Items[idx].matches(productID, size, color) {
			if quantity == 0 {
				c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			} else {
				c.Items[idx].Quantity = quantity
				c.Items[idx].UpdatedAt = time.Now()
			}
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// RemoveItem removes an entry from the cart
func (c *Cart) RemoveItem(productID uuid.UUID, size, color string) error {
	for idx := range c.Items {
		if c.Items[idx].matches(productID, size, color) {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// Clear removes all entries from the cart
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsEmpty returns true if the cart has no entries
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the number of distinct entries
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// TotalQuantity returns the sum of all entry quantities
func (c *Cart) TotalQuantity() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal computes the cart total from the snapshotted unit prices
func (c *Cart) Subtotal() valueobject.Money {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Amount())
	}
	return valueobject.NewMoneyINR(total)
}

// GetItem returns the entry for a variant selection, or nil
func (c *Cart) GetItem(productID uuid.UUID, size, color string) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].matches(productID, size, color) {
			return &c.Items[idx]
		}
	}
	return nil
}
