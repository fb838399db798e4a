package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clothora/backend/internal/domain/shared"
	"github.com/clothora/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Category represents the top-level product category
type Category string

const (
	CategoryMen   Category = "men"
	CategoryWomen Category = "women"
	CategoryKids  Category = "kids"
)

// IsValid checks if the category is one of the known values
func (c Category) IsValid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryKids:
		return true
	}
	return false
}

// StringList is a JSON-backed list of strings for column storage
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// ImageSet maps a color name to its image URL
type ImageSet map[string]string

// Value implements driver.Valuer
func (s ImageSet) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *ImageSet) Scan(value any) error {
	if value == nil {
		*s = ImageSet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into ImageSet", value)
	}
	if len(data) == 0 {
		*s = ImageSet{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// Product represents a sellable clothing item
// It is the aggregate root for catalog operations
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	Category    Category        `gorm:"type:varchar(20);not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Sizes       StringList      `gorm:"type:jsonb;not null;default:'[]'"`
	Colors      StringList      `gorm:"type:jsonb;not null;default:'[]'"`
	Images      ImageSet        `gorm:"type:jsonb;not null;default:'{}'"`
	Stock       int64           `gorm:"not null;default:0"`
	Bestseller  bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, category Category, price valueobject.Money, stock int64) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category must be one of men, women, kids")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          category,
		Price:             price.Amount(),
		Sizes:             StringList{},
		Colors:            StringList{},
		Images:            ImageSet{},
		Stock:             stock,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string, category Category) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Category must be one of men, women, kids")
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UpdatePrice updates the selling price
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	oldPrice := p.Price
	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))

	return nil
}

// SetVariants replaces the available sizes and colors
func (p *Product) SetVariants(sizes, colors []string) error {
	for _, s := range sizes {
		if s == "" {
			return shared.NewDomainError("INVALID_SIZE", "Size cannot be empty")
		}
	}
	for _, c := range colors {
		if c == "" {
			return shared.NewDomainError("INVALID_COLOR", "Color cannot be empty")
		}
	}

	p.Sizes = sizes
	p.Colors = colors
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HasColor returns true if the color is offered for this product
func (p *Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// HasSize returns true if the size is offered for this product
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// SetImage sets the image URL for a color.
// The color must be offered for this product.
func (p *Product) SetImage(color, url string) error {
	if !p.HasColor(color) {
		return shared.NewDomainError("INVALID_COLOR", "Color is not offered for this product")
	}
	if url == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Image URL cannot be empty")
	}

	if p.Images == nil {
		p.Images = ImageSet{}
	}
	p.Images[color] = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ImageFor returns the image URL for a color, falling back to any image
// when the color has none.
func (p *Product) ImageFor(color string) string {
	if url, ok := p.Images[color]; ok {
		return url
	}
	for _, url := range p.Images {
		return url
	}
	return ""
}

// SetStock replaces the stock level
func (p *Product) SetStock(stock int64) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	oldStock := p.Stock
	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock))

	return nil
}

// DecreaseStock removes quantity from stock.
// Returns ErrInsufficientStock when the quantity exceeds what is available.
func (p *Product) DecreaseStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.Stock < quantity {
		return shared.ErrInsufficientStock
	}

	oldStock := p.Stock
	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock))

	return nil
}

// RestoreStock returns quantity to stock, e.g. after a cancellation
func (p *Product) RestoreStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	oldStock := p.Stock
	p.Stock += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock))

	return nil
}

// MarkBestseller toggles the bestseller flag
func (p *Product) MarkBestseller(bestseller bool) {
	p.Bestseller = bestseller
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// InStock returns true if at least the given quantity is available
func (p *Product) InStock(quantity int64) bool {
	return p.Stock >= quantity
}

// PriceMoney returns the price as a Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.Price)
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
