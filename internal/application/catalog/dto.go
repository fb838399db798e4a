package catalog

import (
	"time"

	"github.com/clothora/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Category    string          `json:"category" binding:"required,oneof=men women kids"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Stock       int64           `json:"stock" binding:"min=0"`
	Bestseller  bool            `json:"bestseller"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Category    *string          `json:"category" binding:"omitempty,oneof=men women kids"`
	Price       *decimal.Decimal `json:"price"`
	Sizes       []string         `json:"sizes"`
	Colors      []string         `json:"colors"`
	Stock       *int64           `json:"stock" binding:"omitempty,min=0"`
	Bestseller  *bool            `json:"bestseller"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Price       decimal.Decimal   `json:"price"`
	Sizes       []string          `json:"sizes"`
	Colors      []string          `json:"colors"`
	Images      map[string]string `json:"images"`
	Stock       int64             `json:"stock"`
	Bestseller  bool              `json:"bestseller"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Version     int               `json:"version"`
}

// ProductListFilter represents filter options for product listings
type ProductListFilter struct {
	Search     string `form:"search"`
	Category   string `form:"category" binding:"omitempty,oneof=men women kids"`
	Bestseller *bool  `form:"bestseller"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    string(p.Category),
		Price:       p.Price,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
		Images:      p.Images,
		Stock:       p.Stock,
		Bestseller:  p.Bestseller,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.GetVersion(),
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
